// Package hub is the in-process publish/subscribe registry for
// real-time notifications, keyed by user identity. Each publish fans
// out to every live subscriber for the user with at-most-once,
// registration-ordered delivery, and a failing or slow subscriber
// never blocks the rest.
//
// The hub holds no event history. Reconnecting clients recover missed
// events through a fresh snapshot from the store, not replay.
package hub

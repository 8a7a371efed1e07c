// Package notification defines the value types flowing through the
// real-time notification layer: the Notification projection, the Event
// union delivered to live subscribers, and the Store interface backing
// cold reads and record creation.
//
// The package owns no behavior beyond an in-memory Store used for
// development and tests. Events are immutable; the real-time layer
// never mutates a Notification it relays.
package notification

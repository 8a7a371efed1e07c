// Package dispatch maps booking domain events to notification delivery
// channels. Given an event reason and the recipient's known contact
// channels it computes a deterministic Decision (which channels, what
// queue priority), persists the in-app record, publishes it to live
// subscribers, and drives each remaining channel sender independently
// so a failing provider never blocks the others.
package dispatch

package notification

import "time"

// Event is a real-time notification event delivered to live subscribers.
// It is a closed union: Created, Updated, and BulkSync are the only
// implementations. Events are immutable once constructed.
type Event interface {
	event()
}

// Created signals that a new notification was persisted for the user.
type Created struct {
	Notification Notification
}

// Updated signals that read-state changed for a single notification.
// Subscribers merge the new ReadAt into their local state; the full
// notification is not re-sent.
type Updated struct {
	ID     string
	ReadAt time.Time
}

// BulkSync signals that the subscriber's view is stale and must be
// re-fetched from the store, e.g. after a mark-all-as-read. It replaces
// emitting one Updated per affected notification.
type BulkSync struct{}

func (Created) event()  {}
func (Updated) event()  {}
func (BulkSync) event() {}

package notification

import (
	"time"
)

// Type identifies the booking event that produced a notification.
type Type string

const (
	TypeBookingCreated       Type = "booking_created"
	TypeBookingCancelled     Type = "booking_cancelled"
	TypeBookingCompleted     Type = "booking_completed"
	TypeBookingRescheduled   Type = "booking_rescheduled"
	TypeBookingStatusChanged Type = "booking_status_changed"
)

// Valid reports whether t is one of the known notification types.
func (t Type) Valid() bool {
	switch t {
	case TypeBookingCreated, TypeBookingCancelled, TypeBookingCompleted,
		TypeBookingRescheduled, TypeBookingStatusChanged:
		return true
	}
	return false
}

// MaxMessageLength bounds the message carried by a notification.
// Longer messages are truncated by the store, not rejected.
const MaxMessageLength = 500

// Notification is a read-only projection of a stored notification.
// The real-time layer relays copies it receives from the store and
// never mutates them.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Type      Type       `json:"type"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt"`
}

// IsRead reports whether the notification has been read.
func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}

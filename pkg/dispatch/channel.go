package dispatch

import (
	"github.com/sparklean/notify/pkg/notification"
)

// Channel is a delivery medium for a notification.
type Channel string

const (
	ChannelInApp Channel = "IN_APP"
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
)

// Recipient carries the contact information the channel policy needs.
// Presence of a phone number is what enables SMS.
type Recipient struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// Decision is the derived routing for one domain event: the ordered set
// of channels to use and an opaque priority hint consumed by the
// dispatch queue. Decisions are recomputed per event, never stored.
type Decision struct {
	Channels []Channel
	Priority int
}

// Includes reports whether the decision routes over the given channel.
func (d Decision) Includes(ch Channel) bool {
	for _, c := range d.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// Priority values per event reason. The numbers themselves are a
// tuning concern; the relative order cancelled > rescheduled >
// completed > created > status_changed is the invariant.
const (
	PriorityCancelled     = 8
	PriorityRescheduled   = 7
	PriorityCompleted     = 6
	PriorityCreated       = 5
	PriorityStatusChanged = 4
)

// PriorityFor returns the queue ordering hint for an event reason.
func PriorityFor(reason notification.Type) int {
	switch reason {
	case notification.TypeBookingCancelled:
		return PriorityCancelled
	case notification.TypeBookingRescheduled:
		return PriorityRescheduled
	case notification.TypeBookingCompleted:
		return PriorityCompleted
	case notification.TypeBookingCreated:
		return PriorityCreated
	default:
		return PriorityStatusChanged
	}
}

// Decide computes the channel routing for an event. The policy is
// deterministic:
//
//   - IN_APP is always included.
//   - EMAIL is included whenever the recipient has an email on file.
//   - SMS is included only when the recipient has a phone on file.
//   - Generic status changes are restricted to IN_APP, so low-signal
//     transitions do not reach email or SMS inboxes.
func Decide(reason notification.Type, rcpt Recipient) Decision {
	dec := Decision{
		Channels: []Channel{ChannelInApp},
		Priority: PriorityFor(reason),
	}

	switch reason {
	case notification.TypeBookingCreated, notification.TypeBookingCancelled,
		notification.TypeBookingCompleted, notification.TypeBookingRescheduled:
	default:
		// Generic or unknown reasons stay in-app only.
		return dec
	}

	if rcpt.Email != "" {
		dec.Channels = append(dec.Channels, ChannelEmail)
	}
	if rcpt.Phone != "" {
		dec.Channels = append(dec.Channels, ChannelSMS)
	}
	return dec
}

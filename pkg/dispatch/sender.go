package dispatch

import (
	"context"

	"github.com/sparklean/notify/pkg/notification"
)

// Result reports the outcome of a single channel send attempt.
type Result struct {
	Delivered bool
	Reason    string
}

// ChannelSender delivers a notification over one channel. One
// implementation exists per channel; transport-level concerns such as
// timeouts and retries belong to the implementation, not the
// dispatcher.
type ChannelSender interface {
	// Channel returns the channel this sender serves.
	Channel() Channel

	// Send attempts delivery of the notification to the recipient.
	// A failed provider call returns an error; a provider that accepts
	// the request but declines delivery returns Delivered=false with a
	// Reason.
	Send(ctx context.Context, rcpt Recipient, notif notification.Notification) (Result, error)
}

// InAppSender is the IN_APP channel sender. Delivery over this channel
// is the hub publish performed by the dispatcher, so the sender itself
// always reports delivered.
type InAppSender struct{}

// NewInAppSender creates the no-op in-app channel sender.
func NewInAppSender() *InAppSender {
	return &InAppSender{}
}

func (s *InAppSender) Channel() Channel {
	return ChannelInApp
}

func (s *InAppSender) Send(ctx context.Context, rcpt Recipient, notif notification.Notification) (Result, error) {
	return Result{Delivered: true}, nil
}

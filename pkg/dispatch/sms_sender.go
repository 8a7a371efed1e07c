package dispatch

import (
	"context"

	"github.com/sparklean/notify/pkg/notification"
	"github.com/sparklean/notify/pkg/sms"
)

// SMSChannelSender delivers notifications over SMS through the
// platform texter.
type SMSChannelSender struct {
	texter sms.Sender
}

// NewSMSChannelSender creates the SMS channel sender on top of a
// configured SMS provider.
func NewSMSChannelSender(texter sms.Sender) *SMSChannelSender {
	return &SMSChannelSender{texter: texter}
}

func (s *SMSChannelSender) Channel() Channel {
	return ChannelSMS
}

func (s *SMSChannelSender) Send(ctx context.Context, rcpt Recipient, notif notification.Notification) (Result, error) {
	if rcpt.Phone == "" {
		return Result{Delivered: false, Reason: "recipient has no phone on file"}, nil
	}

	err := s.texter.SendSMS(ctx, sms.SendSMSParams{
		To:   rcpt.Phone,
		Body: notif.Message,
	})
	if err != nil {
		return Result{Delivered: false, Reason: "provider error"}, err
	}
	return Result{Delivered: true}, nil
}

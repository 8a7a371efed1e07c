package dispatch

import (
	"context"
	"fmt"
	"html"

	"github.com/sparklean/notify/pkg/email"
	"github.com/sparklean/notify/pkg/notification"
)

// EmailChannelSender delivers notifications over email through the
// platform mailer.
type EmailChannelSender struct {
	mailer email.Sender
}

// NewEmailChannelSender creates the EMAIL channel sender on top of a
// configured mailer.
func NewEmailChannelSender(mailer email.Sender) *EmailChannelSender {
	return &EmailChannelSender{mailer: mailer}
}

func (s *EmailChannelSender) Channel() Channel {
	return ChannelEmail
}

func (s *EmailChannelSender) Send(ctx context.Context, rcpt Recipient, notif notification.Notification) (Result, error) {
	if rcpt.Email == "" {
		return Result{Delivered: false, Reason: "recipient has no email address"}, nil
	}

	err := s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   rcpt.Email,
		Subject:  emailSubject(notif.Type),
		BodyHTML: emailBody(rcpt, notif),
		Tag:      string(notif.Type),
	})
	if err != nil {
		return Result{Delivered: false, Reason: "provider error"}, err
	}
	return Result{Delivered: true}, nil
}

func emailSubject(typ notification.Type) string {
	switch typ {
	case notification.TypeBookingCreated:
		return "Your cleaning is booked"
	case notification.TypeBookingCancelled:
		return "Your booking was cancelled"
	case notification.TypeBookingCompleted:
		return "Your cleaning is complete"
	case notification.TypeBookingRescheduled:
		return "Your booking was rescheduled"
	default:
		return "Booking update"
	}
}

func emailBody(rcpt Recipient, notif notification.Notification) string {
	name := rcpt.Name
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		`<html><body style="font-family:sans-serif;line-height:1.5;color:#111">`+
			`<p>Hi %s,</p><p>%s</p>`+
			`<p style="font-size:12px;color:#6b7280">Notification ID: %s</p>`+
			`</body></html>`,
		html.EscapeString(name),
		html.EscapeString(notif.Message),
		html.EscapeString(notif.ID),
	)
}

package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparklean/notify/pkg/dispatch"
	"github.com/sparklean/notify/pkg/email"
	"github.com/sparklean/notify/pkg/notification"
	"github.com/sparklean/notify/pkg/sms"
)

type fakeMailer struct {
	err  error
	sent []email.SendEmailParams
}

func (m *fakeMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	m.sent = append(m.sent, params)
	return m.err
}

type fakeTexter struct {
	err  error
	sent []sms.SendSMSParams
}

func (m *fakeTexter) SendSMS(ctx context.Context, params sms.SendSMSParams) error {
	m.sent = append(m.sent, params)
	return m.err
}

func TestEmailChannelSender(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	notif := notification.Notification{
		ID:      "n1",
		UserID:  "u1",
		Type:    notification.TypeBookingCancelled,
		Message: "Your cleaning on Friday was cancelled <by the client>",
	}

	t.Run("sends HTML email with escaped message", func(t *testing.T) {
		t.Parallel()
		mailer := &fakeMailer{}
		sender := dispatch.NewEmailChannelSender(mailer)
		assert.Equal(t, dispatch.ChannelEmail, sender.Channel())

		res, err := sender.Send(ctx, dispatch.Recipient{UserID: "u1", Name: "Ana", Email: "ana@example.com"}, notif)
		require.NoError(t, err)
		assert.True(t, res.Delivered)

		require.Len(t, mailer.sent, 1)
		params := mailer.sent[0]
		assert.Equal(t, "ana@example.com", params.SendTo)
		assert.Equal(t, "Your booking was cancelled", params.Subject)
		assert.Contains(t, params.BodyHTML, "Hi Ana,")
		assert.Contains(t, params.BodyHTML, "&lt;by the client&gt;")
		assert.NotContains(t, params.BodyHTML, "<by the client>")
		assert.Equal(t, string(notification.TypeBookingCancelled), params.Tag)
	})

	t.Run("recipient without email is not delivered and not an error", func(t *testing.T) {
		t.Parallel()
		mailer := &fakeMailer{}
		sender := dispatch.NewEmailChannelSender(mailer)

		res, err := sender.Send(ctx, dispatch.Recipient{UserID: "u1"}, notif)
		require.NoError(t, err)
		assert.False(t, res.Delivered)
		assert.NotEmpty(t, res.Reason)
		assert.Empty(t, mailer.sent)
	})

	t.Run("provider failure surfaces as error", func(t *testing.T) {
		t.Parallel()
		mailer := &fakeMailer{err: errors.New("postmark 500")}
		sender := dispatch.NewEmailChannelSender(mailer)

		res, err := sender.Send(ctx, dispatch.Recipient{UserID: "u1", Email: "ana@example.com"}, notif)
		require.Error(t, err)
		assert.False(t, res.Delivered)
	})
}

func TestSMSChannelSender(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	notif := notification.Notification{
		ID:      "n1",
		UserID:  "u1",
		Type:    notification.TypeBookingRescheduled,
		Message: "Your cleaning moved to Saturday 10am",
	}

	t.Run("sends the notification message as the SMS body", func(t *testing.T) {
		t.Parallel()
		texter := &fakeTexter{}
		sender := dispatch.NewSMSChannelSender(texter)
		assert.Equal(t, dispatch.ChannelSMS, sender.Channel())

		res, err := sender.Send(ctx, dispatch.Recipient{UserID: "u1", Phone: "+15550100"}, notif)
		require.NoError(t, err)
		assert.True(t, res.Delivered)

		require.Len(t, texter.sent, 1)
		assert.Equal(t, "+15550100", texter.sent[0].To)
		assert.Equal(t, notif.Message, texter.sent[0].Body)
	})

	t.Run("recipient without phone is not delivered and not an error", func(t *testing.T) {
		t.Parallel()
		texter := &fakeTexter{}
		sender := dispatch.NewSMSChannelSender(texter)

		res, err := sender.Send(ctx, dispatch.Recipient{UserID: "u1"}, notif)
		require.NoError(t, err)
		assert.False(t, res.Delivered)
		assert.Empty(t, texter.sent)
	})

	t.Run("provider failure surfaces as error", func(t *testing.T) {
		t.Parallel()
		texter := &fakeTexter{err: errors.New("twilio 500")}
		sender := dispatch.NewSMSChannelSender(texter)

		res, err := sender.Send(ctx, dispatch.Recipient{UserID: "u1", Phone: "+15550100"}, notif)
		require.Error(t, err)
		assert.False(t, res.Delivered)
	})
}

func TestInAppSender(t *testing.T) {
	t.Parallel()

	sender := dispatch.NewInAppSender()
	assert.Equal(t, dispatch.ChannelInApp, sender.Channel())

	res, err := sender.Send(context.Background(), dispatch.Recipient{UserID: "u1"}, notification.Notification{})
	require.NoError(t, err)
	assert.True(t, res.Delivered)
}

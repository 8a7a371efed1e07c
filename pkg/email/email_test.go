package email_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparklean/notify/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "ana@example.com",
		Subject:  "Your cleaning is booked",
		BodyHTML: "<p>hi</p>",
	}

	t.Run("valid params pass", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, valid.Validate())
	})

	t.Run("missing recipient", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.SendTo = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("malformed recipient", func(t *testing.T) {
		t.Parallel()
		for _, addr := range []string{"not-an-email", "a@b", "has space@example.com"} {
			p := valid
			p.SendTo = addr
			assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams, "address %q", addr)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Subject = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.BodyHTML = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	full := email.Config{
		PostmarkServerToken:  "server",
		PostmarkAccountToken: "account",
		SenderEmail:          "no-reply@example.com",
	}
	assert.True(t, full.Enabled())

	assert.False(t, email.Config{}.Enabled())

	partial := full
	partial.SenderEmail = ""
	assert.False(t, partial.Enabled())
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("logs instead of sending", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		sender := email.NewDevSender(slog.New(slog.NewTextHandler(&buf, nil)))

		err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "ana@example.com",
			Subject:  "Booking update",
			BodyHTML: "<p>hi</p>",
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "ana@example.com")
	})

	t.Run("still validates params", func(t *testing.T) {
		t.Parallel()
		sender := email.NewDevSender(nil)

		err := sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "bad"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}

func TestNewPostmarkSender(t *testing.T) {
	t.Parallel()

	t.Run("rejects incomplete config", func(t *testing.T) {
		t.Parallel()
		_, err := email.NewPostmarkSender(email.Config{})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("accepts complete config", func(t *testing.T) {
		t.Parallel()
		sender, err := email.NewPostmarkSender(email.Config{
			PostmarkServerToken:  "server",
			PostmarkAccountToken: "account",
			SenderEmail:          "no-reply@example.com",
		})
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}

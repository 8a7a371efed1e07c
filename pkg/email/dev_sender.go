package email

import (
	"context"
	"log/slog"
)

// DevSender implements Sender for local development. It logs the email
// instead of calling an external provider.
type DevSender struct {
	logger *slog.Logger
}

// NewDevSender creates a development email sender that logs outbound
// mail at info level.
func NewDevSender(logger *slog.Logger) *DevSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevSender{logger: logger}
}

func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	d.logger.LogAttrs(ctx, slog.LevelInfo, "dev email sender: email not sent",
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
	)
	return nil
}

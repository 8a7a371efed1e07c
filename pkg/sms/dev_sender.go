package sms

import (
	"context"
	"log/slog"
)

// DevSender implements Sender for local development. It logs the
// message instead of calling an external provider.
type DevSender struct {
	logger *slog.Logger
}

// NewDevSender creates a development SMS sender that logs outbound
// messages at info level.
func NewDevSender(logger *slog.Logger) *DevSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevSender{logger: logger}
}

func (d *DevSender) SendSMS(ctx context.Context, params SendSMSParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	d.logger.LogAttrs(ctx, slog.LevelInfo, "dev sms sender: message not sent",
		slog.String("to", params.To),
		slog.Int("body_length", len(params.Body)),
	)
	return nil
}

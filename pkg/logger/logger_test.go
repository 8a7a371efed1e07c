package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparklean/notify/pkg/logger"
	"github.com/sparklean/notify/pkg/notification"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to JSON at info level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Debug("hidden")
		log.Info("shown")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "shown", record["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))

		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelError))

		log.Info("hidden")
		log.Warn("hidden too")
		assert.Empty(t, buf.String())

		log.Error("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("static attributes appear on every record", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "notifyd")),
		)

		log.Info("hello")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "notifyd", record["service"])
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("honors configured level and format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewFromConfig(
			logger.Config{Level: "debug", Format: logger.FormatText},
			logger.WithOutput(&buf),
		)

		log.Debug("verbose")
		assert.Contains(t, buf.String(), "msg=verbose")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewFromConfig(
			logger.Config{Level: "chatty", Format: logger.FormatText},
			logger.WithOutput(&buf),
		)

		log.Debug("hidden")
		assert.Empty(t, buf.String())
		log.Info("shown")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.LogAttrs(context.Background(), slog.LevelInfo, "dispatch",
		logger.UserID("u1"),
		logger.NotificationID("n1"),
		logger.Channel("EMAIL"),
		logger.Component("dispatcher"),
		logger.Event(notification.BulkSync{}),
		logger.Error(errors.New("boom")),
	)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "u1", record["user_id"])
	assert.Equal(t, "n1", record["notification_id"])
	assert.Equal(t, "EMAIL", record["channel"])
	assert.Equal(t, "dispatcher", record["component"])
	assert.Equal(t, "boom", record["error"])
	assert.NotEmpty(t, record["event"])
}

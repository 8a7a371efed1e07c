package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparklean/notify/pkg/logger"
	"github.com/sparklean/notify/pkg/notification"
)

// EventPublisher publishes real-time events to a user's live
// subscribers. Satisfied by *hub.Hub.
type EventPublisher interface {
	Publish(ctx context.Context, userID string, event notification.Event)
}

// Dispatcher decides per domain event which channels a notification
// travels over and drives each channel sender independently. It does
// not deduplicate: invoking it at most once per domain event per
// recipient is the caller's contract.
type Dispatcher struct {
	store     notification.Store
	publisher EventPublisher
	senders   map[Channel]ChannelSender
	logger    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger used for channel outcomes.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher over the given store, publisher,
// and channel senders. Channels without a registered sender are logged
// and skipped at dispatch time.
func NewDispatcher(store notification.Store, publisher EventPublisher, senders []ChannelSender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		publisher: publisher,
		senders:   make(map[Channel]ChannelSender, len(senders)),
		logger:    slog.Default(),
	}
	for _, s := range senders {
		d.senders[s.Channel()] = s
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch routes one domain event to the recipient: it computes the
// channel decision, persists the in-app record, publishes the created
// notification to live subscribers, then attempts every remaining
// channel independently. A failure on one channel never aborts the
// others and never rolls back the stored record; each attempt is
// logged with its outcome. Only a store failure is returned as an
// error, after the other channels were still attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, reason notification.Type, rcpt Recipient, message string) (Decision, error) {
	dec := Decide(reason, rcpt)

	notif, storeErr := d.store.Create(ctx, rcpt.UserID, reason, message)
	if storeErr != nil {
		storeErr = fmt.Errorf("failed to store notification: %w", storeErr)
		d.logger.LogAttrs(ctx, slog.LevelError, "in-app notification not created",
			logger.UserID(rcpt.UserID),
			logger.Channel(string(ChannelInApp)),
			logger.Error(storeErr),
		)
		// Carry what we know so email/SMS can still go out.
		notif = notification.Notification{UserID: rcpt.UserID, Type: reason, Message: message}
	} else {
		d.publisher.Publish(ctx, rcpt.UserID, notification.Created{Notification: notif})
	}

	for _, ch := range dec.Channels {
		if ch == ChannelInApp && storeErr != nil {
			continue
		}
		d.sendChannel(ctx, ch, rcpt, notif)
	}

	return dec, storeErr
}

func (d *Dispatcher) sendChannel(ctx context.Context, ch Channel, rcpt Recipient, notif notification.Notification) {
	sender, ok := d.senders[ch]
	if !ok {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "no sender registered for channel",
			logger.NotificationID(notif.ID),
			logger.Channel(string(ch)),
		)
		return
	}

	res, err := sender.Send(ctx, rcpt, notif)
	switch {
	case err != nil:
		d.logger.LogAttrs(ctx, slog.LevelError, "channel send failed",
			logger.NotificationID(notif.ID),
			logger.UserID(rcpt.UserID),
			logger.Channel(string(ch)),
			logger.Error(err),
		)
	case !res.Delivered:
		d.logger.LogAttrs(ctx, slog.LevelWarn, "channel send not delivered",
			logger.NotificationID(notif.ID),
			logger.UserID(rcpt.UserID),
			logger.Channel(string(ch)),
			slog.String("reason", res.Reason),
		)
	default:
		d.logger.LogAttrs(ctx, slog.LevelInfo, "channel send delivered",
			logger.NotificationID(notif.ID),
			logger.UserID(rcpt.UserID),
			logger.Channel(string(ch)),
		)
	}
}

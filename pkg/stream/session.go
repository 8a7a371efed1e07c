package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sparklean/notify/pkg/hub"
	"github.com/sparklean/notify/pkg/logger"
	"github.com/sparklean/notify/pkg/notification"
)

// Frame event names on the wire.
const (
	eventInit   = "init"
	eventNew    = "notification:new"
	eventUpdate = "notification:update"
	eventSync   = "notification:sync"
	eventPing   = "ping"
	eventError  = "error"
)

type snapshotPayload struct {
	Notifications []notification.Notification `json:"notifications"`
}

type updatePayload struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"readAt"`
}

type pingPayload struct {
	TS string `json:"ts"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// session is the per-connection state machine. It owns the connection
// writer, the heartbeat timer, and the per-connection event counter.
// All frame writes happen on the run goroutine; the hub only ever
// pushes into the session's event queue.
type session struct {
	userID string
	w      io.Writer
	flush  http.Flusher
	store  notification.Store
	cfg    Config
	logger *slog.Logger

	// lastEventID is the per-connection counter, seeded from the
	// client's resume header. Ids are monotonic within this connection
	// only; no replay buffer exists behind them.
	lastEventID uint64

	events      chan notification.Event
	closed      chan struct{}
	closeOnce   sync.Once
	unsubscribe hub.UnsubscribeFunc
}

func newSession(userID string, w io.Writer, flush http.Flusher, store notification.Store, cfg Config, lastEventID uint64, log *slog.Logger) *session {
	return &session{
		userID:      userID,
		w:           w,
		flush:       flush,
		store:       store,
		cfg:         cfg,
		logger:      log,
		lastEventID: lastEventID,
		events:      make(chan notification.Event, cfg.EventBuffer),
		closed:      make(chan struct{}),
	}
}

// Deliver implements hub.Subscriber. It never blocks the hub: events
// past a full session queue are dropped, and the client recovers the
// gap on its next reconnect via snapshot.
func (s *session) Deliver(event notification.Event) {
	select {
	case <-s.closed:
		return
	default:
	}

	select {
	case s.events <- event:
	default:
		s.logger.LogAttrs(context.Background(), slog.LevelWarn, "session queue full, event dropped",
			logger.UserID(s.userID),
			logger.Event(event),
		)
	}
}

// run drives the session until the client disconnects, the server
// shuts down, or a write fails. It always leaves through close, so the
// heartbeat stops and the hub subscription is released exactly once no
// matter which trigger fired first.
func (s *session) run(ctx context.Context) {
	defer s.close()

	heartbeat := time.NewTicker(s.cfg.HeartbeatInterval)
	defer heartbeat.Stop()

	if err := s.sendSnapshot(ctx, eventInit); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		case event := <-s.events:
			if err := s.handleEvent(ctx, event); err != nil {
				return
			}
		case t := <-heartbeat.C:
			if err := s.writeFrame(eventPing, pingPayload{TS: t.UTC().Format(time.RFC3339)}); err != nil {
				return
			}
		}
	}
}

// close is idempotent: abort, write failure, and shutdown can all race
// into it, and the subscription is still released exactly once.
func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
	})
}

func (s *session) handleEvent(ctx context.Context, event notification.Event) error {
	switch e := event.(type) {
	case notification.Created:
		return s.writeFrame(eventNew, e.Notification)
	case notification.Updated:
		return s.writeFrame(eventUpdate, updatePayload{ID: e.ID, ReadAt: e.ReadAt})
	case notification.BulkSync:
		return s.sendSnapshot(ctx, eventSync)
	default:
		// Unknown event type; skip rather than break the stream.
		s.logger.LogAttrs(ctx, slog.LevelWarn, "unknown event type skipped",
			logger.UserID(s.userID),
			logger.Event(event),
		)
		return nil
	}
}

// sendSnapshot fetches a fresh page from the store and emits it under
// the given event name. A store failure degrades to an error frame so
// the connection stays open and keeps receiving live events.
func (s *session) sendSnapshot(ctx context.Context, event string) error {
	page, err := s.store.ListForUser(ctx, s.userID, s.cfg.SnapshotLimit, "")
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "snapshot fetch failed",
			logger.UserID(s.userID),
			logger.Error(err),
		)
		return s.writeFrame(eventError, errorPayload{Message: "failed to load notifications"})
	}

	items := page.Items
	if items == nil {
		items = []notification.Notification{}
	}
	return s.writeFrame(event, snapshotPayload{Notifications: items})
}

// writeFrame serializes one SSE frame and flushes it. Every frame
// consumes the next id, including pings, so the client-observed ids
// are strictly increasing for the life of the connection.
func (s *session) writeFrame(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s frame: %w", event, err)
	}

	s.lastEventID++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.lastEventID, event, data); err != nil {
		return fmt.Errorf("failed to write %s frame: %w", event, err)
	}
	s.flush.Flush()
	return nil
}

package stream

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sparklean/notify/pkg/hub"
	"github.com/sparklean/notify/pkg/logger"
	"github.com/sparklean/notify/pkg/notification"
)

// lastEventIDHeader carries the client's resume position. EventSource
// sends it automatically on reconnect; the query parameter is the
// fallback for clients that cannot set headers.
const (
	lastEventIDHeader = "Last-Event-ID"
	lastEventIDQuery  = "lastEventId"
)

// SubscriptionRegistry is the slice of the hub the transport needs.
// Satisfied by *hub.Hub.
type SubscriptionRegistry interface {
	Subscribe(userID string, sub hub.Subscriber) hub.UnsubscribeFunc
}

// IdentifyFunc resolves the authenticated user for a stream request.
// Authentication itself lives in middleware outside this module; the
// handler only needs the resulting identity.
type IdentifyFunc func(r *http.Request) (string, error)

// Handler serves the notification event stream. Mount it on the route
// clients open their EventSource against.
type Handler struct {
	registry SubscriptionRegistry
	store    notification.Store
	identify IdentifyFunc
	cfg      Config
	logger   *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the logger for session lifecycle events.
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates the SSE stream handler.
func NewHandler(registry SubscriptionRegistry, store notification.Store, identify IdentifyFunc, cfg Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: registry,
		store:    store,
		identify: identify,
		cfg:      cfg.withDefaults(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP opens one streaming session: snapshot first, then live
// events until the client goes away. The request context's
// cancellation is the session's cancellation.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identify(r)
	if err != nil || userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	// Disables response buffering in nginx-style proxies, which would
	// otherwise hold frames back until the buffer fills.
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sess := newSession(userID, w, flusher, h.store, h.cfg, resumeID(r), h.logger)
	sess.unsubscribe = h.registry.Subscribe(userID, sess)

	h.logger.LogAttrs(r.Context(), slog.LevelDebug, "stream session opened",
		logger.UserID(userID),
	)

	sess.run(r.Context())

	h.logger.LogAttrs(r.Context(), slog.LevelDebug, "stream session closed",
		logger.UserID(userID),
	)
}

// resumeID parses the client-supplied last-seen event id. There is no
// replay buffer behind it: the value only seeds the connection's
// counter, and a malformed value means "start fresh", never an error
// response.
func resumeID(r *http.Request) uint64 {
	raw := r.Header.Get(lastEventIDHeader)
	if raw == "" {
		raw = r.URL.Query().Get(lastEventIDQuery)
	}
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

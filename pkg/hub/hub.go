package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sparklean/notify/pkg/logger"
	"github.com/sparklean/notify/pkg/notification"
)

// Subscriber receives real-time notification events for a single user.
// Deliver is invoked from the subscriber's own delivery goroutine, in
// publish order, never concurrently with itself. Implementations are
// typically a thin push into the owning session.
type Subscriber interface {
	Deliver(event notification.Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(event notification.Event)

func (f SubscriberFunc) Deliver(event notification.Event) { f(event) }

// UnsubscribeFunc removes the subscription it was returned for.
// It is idempotent and safe to call concurrently with Publish.
type UnsubscribeFunc func()

// Hub maps user identities to their live subscribers and fans events
// out to every subscriber of a user. State is process-local: nothing
// survives a restart, and reconnecting clients recover via snapshot,
// not replay.
//
// Lock order is always hub mutex before user-set mutex. Fan-out for a
// user serializes on the user's set, so publish/unsubscribe races for
// the same user resolve at a single mutation point.
type Hub struct {
	mu     sync.RWMutex
	users  map[string]*userSet
	logger *slog.Logger
	closed bool
}

// userSet holds one user's subscribers in registration order.
type userSet struct {
	mu      sync.Mutex
	entries []*entry
}

type entry struct {
	sub    Subscriber
	events chan notification.Event
	once   sync.Once
	done   chan struct{}
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger used for delivery failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// subscriberBuffer is each subscriber's event queue depth. Events past
// a full buffer are dropped for that subscriber only; sessions recover
// from drops on reconnect via snapshot.
const subscriberBuffer = 64

// New creates an empty hub. Construct one per process and pass it by
// reference to the dispatcher and the streaming handler.
func New(opts ...Option) *Hub {
	h := &Hub{
		users:  make(map[string]*userSet),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers sub for the user's events and returns the
// function that removes exactly this subscription. Multiple
// subscriptions per user are expected (one per open tab or device).
// Subscribing on a closed hub returns a no-op unsubscribe and the
// subscriber never receives events.
func (h *Hub) Subscribe(userID string, sub Subscriber) UnsubscribeFunc {
	e := &entry{
		sub:    sub,
		events: make(chan notification.Event, subscriberBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return func() {}
	}
	set, ok := h.users[userID]
	if !ok {
		set = &userSet{}
		h.users[userID] = set
	}
	set.mu.Lock()
	set.entries = append(set.entries, e)
	set.mu.Unlock()
	h.mu.Unlock()

	go h.deliverLoop(userID, e)

	return func() {
		e.once.Do(func() {
			h.mu.Lock()
			set.mu.Lock()
			for i, cur := range set.entries {
				if cur == e {
					set.entries = append(set.entries[:i], set.entries[i+1:]...)
					break
				}
			}
			if len(set.entries) == 0 && h.users[userID] == set {
				delete(h.users, userID)
			}
			set.mu.Unlock()
			h.mu.Unlock()

			close(e.done)
		})
	}
}

// Publish delivers event to every currently-registered subscriber for
// the user, in registration order. The call never blocks on a slow
// subscriber: each one drains its own buffered queue, and a full queue
// drops the event for that subscriber alone. Publishing to a user with
// no subscribers is a no-op.
func (h *Hub) Publish(ctx context.Context, userID string, event notification.Event) {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return
	}
	set, ok := h.users[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	// Enqueueing under the set mutex is what guarantees that a
	// completed unsubscribe is never published to, and that two
	// publishes for the same user land in every queue in the same
	// order. Enqueue is non-blocking, so the critical section is short.
	set.mu.Lock()
	defer set.mu.Unlock()
	for _, e := range set.entries {
		select {
		case e.events <- event:
		default:
			h.logger.LogAttrs(ctx, slog.LevelWarn, "subscriber queue full, event dropped",
				logger.UserID(userID),
				logger.Event(event),
			)
		}
	}
}

// SubscriberCount returns the number of live subscribers for a user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	set, ok := h.users[userID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	return len(set.entries)
}

// Close shuts the hub down and detaches every subscriber. Subsequent
// Subscribe and Publish calls are no-ops. Close is idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	sets := make([]*userSet, 0, len(h.users))
	for _, set := range h.users {
		sets = append(sets, set)
	}
	clear(h.users)
	h.mu.Unlock()

	for _, set := range sets {
		set.mu.Lock()
		for _, e := range set.entries {
			e.once.Do(func() { close(e.done) })
		}
		set.entries = nil
		set.mu.Unlock()
	}
}

// deliverLoop drains one subscriber's queue. A panicking subscriber is
// logged and kept; removal is the session's responsibility via its
// unsubscribe function.
func (h *Hub) deliverLoop(userID string, e *entry) {
	for {
		// Bias toward shutdown so a closed subscription stops promptly
		// even with events still queued.
		select {
		case <-e.done:
			return
		default:
		}

		select {
		case <-e.done:
			return
		case event := <-e.events:
			h.deliver(userID, e.sub, event)
		}
	}
}

func (h *Hub) deliver(userID string, sub Subscriber, event notification.Event) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.LogAttrs(context.Background(), slog.LevelError, "subscriber panicked during delivery",
				logger.UserID(userID),
				logger.Event(event),
				slog.Any("panic", r),
			)
		}
	}()
	sub.Deliver(event)
}

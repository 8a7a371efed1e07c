package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a notification does not exist for the user.
	ErrNotFound = errors.New("notification not found")

	// ErrInvalidType is returned when creating a notification with an
	// unknown type.
	ErrInvalidType = errors.New("invalid notification type")
)

// DefaultPageSize is used by ListForUser when the caller passes a
// non-positive limit.
const DefaultPageSize = 20

// MemoryStore is an in-memory Store implementation for development and
// tests. Production deployments back the Store interface with the
// platform's relational database.
type MemoryStore struct {
	byUser map[string][]Notification // append order, oldest first
	mu     sync.RWMutex
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory notification store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser: make(map[string][]Notification),
		now:    time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID string, typ Type, message string) (Notification, error) {
	if userID == "" {
		return Notification{}, errors.New("user ID is required")
	}
	if !typ.Valid() {
		return Notification{}, ErrInvalidType
	}
	if len(message) > MaxMessageLength {
		message = message[:MaxMessageLength]
	}

	notif := Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.byUser[userID] = append(s.byUser[userID], notif)
	s.mu.Unlock()

	return notif, nil
}

func (s *MemoryStore) ListForUser(ctx context.Context, userID string, limit int, cursor string) (Page, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byUser[userID]

	// Walk newest first; a cursor names the last item of the previous
	// page, so skip until just past it.
	start := len(stored) - 1
	if cursor != "" {
		found := false
		for i := len(stored) - 1; i >= 0; i-- {
			if stored[i].ID == cursor {
				start = i - 1
				found = true
				break
			}
		}
		if !found {
			// Stale cursor, e.g. the record was deleted. Start fresh
			// rather than erroring.
			start = len(stored) - 1
		}
	}

	items := make([]Notification, 0, limit)
	i := start
	for ; i >= 0 && len(items) < limit; i-- {
		items = append(items, stored[i])
	}

	page := Page{Items: items, HasMore: i >= 0}
	if page.HasMore && len(items) > 0 {
		page.NextCursor = items[len(items)-1].ID
	}
	return page, nil
}

func (s *MemoryStore) MarkRead(ctx context.Context, userID, notifID string) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.byUser[userID]
	for i := range stored {
		if stored[i].ID == notifID {
			if stored[i].ReadAt == nil {
				readAt := s.now()
				if readAt.Before(stored[i].CreatedAt) {
					readAt = stored[i].CreatedAt
				}
				stored[i].ReadAt = &readAt
			}
			return stored[i], nil
		}
	}
	return Notification{}, ErrNotFound
}

func (s *MemoryStore) MarkAllRead(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int
	stored := s.byUser[userID]
	for i := range stored {
		if stored[i].ReadAt == nil {
			readAt := s.now()
			if readAt.Before(stored[i].CreatedAt) {
				readAt = stored[i].CreatedAt
			}
			stored[i].ReadAt = &readAt
			updated++
		}
	}
	return updated, nil
}

func (s *MemoryStore) CountUnread(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	for _, n := range s.byUser[userID] {
		if n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

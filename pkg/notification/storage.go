package notification

import (
	"context"
)

// Page is one page of a user's notifications, newest first.
type Page struct {
	Items      []Notification `json:"items"`
	NextCursor string         `json:"nextCursor,omitempty"`
	HasMore    bool           `json:"hasMore"`
}

// Store handles notification persistence. The real-time layer consumes
// it for cold reads (initial snapshot, resync) and record creation; the
// concrete relational implementation lives outside this module.
type Store interface {
	// ListForUser returns a page of the user's notifications ordered
	// newest first. An empty cursor starts from the most recent.
	ListForUser(ctx context.Context, userID string, limit int, cursor string) (Page, error)

	// Create persists a new unread notification and returns it with
	// ID and CreatedAt populated.
	Create(ctx context.Context, userID string, typ Type, message string) (Notification, error)

	// MarkRead marks a single notification as read and returns the
	// updated record.
	MarkRead(ctx context.Context, userID, notifID string) (Notification, error)

	// MarkAllRead marks every unread notification for the user as read
	// and returns the number of affected records.
	MarkAllRead(ctx context.Context, userID string) (int, error)

	// CountUnread returns the user's unread notification count.
	CountUnread(ctx context.Context, userID string) (int, error)
}

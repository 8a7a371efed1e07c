package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sparklean/notify/pkg/dispatch"
	"github.com/sparklean/notify/pkg/notification"
)

// Job is one pending notification dispatch. Priority is the opaque
// ordering hint computed by the channel policy; higher drains first.
type Job struct {
	ID          uuid.UUID
	Reason      notification.Type
	Recipient   dispatch.Recipient
	Message     string
	Priority    int
	ScheduledAt time.Time // zero means ready immediately
	EnqueuedAt  time.Time
}

// Dispatcher executes one dispatch decision. Satisfied by
// *dispatch.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, reason notification.Type, rcpt dispatch.Recipient, message string) (dispatch.Decision, error)
}

// Status is a point-in-time snapshot of queue counters.
type Status struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

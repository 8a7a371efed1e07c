package queue

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sparklean/notify/pkg/dispatch"
	"github.com/sparklean/notify/pkg/logger"
)

// Queue is an in-memory priority queue of pending notification
// dispatches. Jobs drain on a poll interval, highest priority first,
// FIFO within a priority. State is process-local; a restart loses
// pending jobs, which matches the best-effort contract of the
// real-time layer.
type Queue struct {
	dispatcher Dispatcher
	cfg        Config
	logger     *slog.Logger

	mu        sync.Mutex
	jobs      []Job
	completed int
	failed    int
	started   bool

	stop chan struct{}
	done chan struct{}
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger sets the logger used for job outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// New creates a queue draining into the given dispatcher.
func New(dispatcher Dispatcher, cfg Config, opts ...Option) *Queue {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	q := &Queue{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     slog.Default(),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue adds a job. A zero Priority is filled in from the channel
// policy for the job's reason; a zero ID is assigned.
func (q *Queue) Enqueue(job Job) uuid.UUID {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Priority == 0 {
		job.Priority = dispatch.PriorityFor(job.Reason)
	}
	job.EnqueuedAt = time.Now()

	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	// Stable sort keeps FIFO order within a priority band.
	sort.SliceStable(q.jobs, func(i, j int) bool {
		return q.jobs[i].Priority > q.jobs[j].Priority
	})
	q.mu.Unlock()

	q.logger.LogAttrs(context.Background(), slog.LevelInfo, "dispatch job enqueued",
		slog.String("job_id", job.ID.String()),
		logger.UserID(job.Recipient.UserID),
		slog.String("reason", string(job.Reason)),
		slog.Int("priority", job.Priority),
	)
	return job.ID
}

// Start launches the processing loop. It returns immediately; the loop
// runs until Stop is called. Starting twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.mu.Unlock()

	go q.run(ctx)
}

// Stop halts the processing loop and waits for an in-flight job to
// finish, up to the configured shutdown timeout.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()

	select {
	case <-q.stop:
		// Already stopping.
	default:
		close(q.stop)
	}

	select {
	case <-q.done:
	case <-time.After(q.cfg.ShutdownTimeout):
		q.logger.LogAttrs(context.Background(), slog.LevelWarn, "queue shutdown timed out")
	}
}

// Status returns current queue counters.
func (q *Queue) Status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Status{
		Pending:   len(q.jobs),
		Completed: q.completed,
		Failed:    q.failed,
	}
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)

	ticker := time.NewTicker(q.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-q.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.drainReady(ctx)
		}
	}
}

// drainReady processes every currently-ready job, one at a time.
// Channel-level failures are already isolated inside the dispatcher; a
// job only counts as failed when the in-app record could not be
// stored.
func (q *Queue) drainReady(ctx context.Context) {
	for {
		job, ok := q.takeReady()
		if !ok {
			return
		}

		_, err := q.dispatcher.Dispatch(ctx, job.Reason, job.Recipient, job.Message)

		q.mu.Lock()
		if err != nil {
			q.failed++
		} else {
			q.completed++
		}
		q.mu.Unlock()

		if err != nil {
			q.logger.LogAttrs(ctx, slog.LevelError, "dispatch job failed",
				slog.String("job_id", job.ID.String()),
				slog.String("reason", string(job.Reason)),
				logger.Error(err),
			)
		} else {
			q.logger.LogAttrs(ctx, slog.LevelInfo, "dispatch job completed",
				slog.String("job_id", job.ID.String()),
				slog.String("reason", string(job.Reason)),
			)
		}

		select {
		case <-q.stop:
			return
		case <-ctx.Done():
			return
		default:
		}
	}
}

// takeReady pops the highest-priority job whose schedule time has
// passed.
func (q *Queue) takeReady() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	for i, job := range q.jobs {
		if job.ScheduledAt.IsZero() || !job.ScheduledAt.After(now) {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return job, true
		}
	}
	return Job{}, false
}

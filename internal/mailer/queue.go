package mailer

import (
	"context"
	"log/slog"
)

// Queue is a buffered fire-and-forget email queue. Enqueue never blocks the
// caller and delivery failures never propagate back to the request that
// triggered them.
type Queue struct {
	jobs   chan Job
	sender Sender
}

// NewQueue creates a Queue with the given buffer size.
func NewQueue(sender Sender, size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		jobs:   make(chan Job, size),
		sender: sender,
	}
}

// Enqueue submits a job for asynchronous delivery. If the buffer is full the
// job is dropped and logged.
func (q *Queue) Enqueue(job Job) {
	select {
	case q.jobs <- job:
	default:
		slog.Warn("mail queue full, dropping job", "to", job.To, "subject", job.Subject)
	}
}

// Run consumes jobs until ctx is cancelled. Failures are logged and swallowed.
func (q *Queue) Run(ctx context.Context) {
	slog.Info("mail queue worker started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("mail queue worker stopped")
			return
		case job := <-q.jobs:
			if err := q.sender.Send(ctx, job); err != nil {
				slog.Error("failed to send email", "error", err, "to", job.To)
			}
		}
	}
}

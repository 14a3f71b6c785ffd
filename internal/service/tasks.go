package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"streetnetwork.app/kinship/internal/queue"
)

// ErrNotConfigured is wrapped by services whose integration has no credentials.
var ErrNotConfigured = errors.New("not configured")

// TaskEnqueuer hands work to the background worker.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task queue.Task) error
}

// enqueue logs failures instead of returning them; callers have already
// committed their writes.
func enqueue(ctx context.Context, q TaskEnqueuer, task queue.Task) {
	if q == nil {
		slog.WarnContext(ctx, "task queue unavailable, dropping task", "task_type", task.TaskType)
		return
	}
	if err := q.Enqueue(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue task",
			"error", err,
			"task_type", task.TaskType)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

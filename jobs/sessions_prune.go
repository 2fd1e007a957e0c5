package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// SessionPruner is the slice of the auth service this job needs.
type SessionPruner interface {
	PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SessionsPruneJob deletes expired session audit rows.
type SessionsPruneJob struct {
	pruner SessionPruner
	logger *slog.Logger
}

// NewSessionsPruneJob constructs the job.
func NewSessionsPruneJob(pruner SessionPruner, logger *slog.Logger) *SessionsPruneJob {
	return &SessionsPruneJob{pruner: pruner, logger: logger}
}

// Handle processes TaskSessionsPrune tasks.
func (j *SessionsPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SessionsPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	cutoff := time.Now().Add(-payload.Grace)
	removed, err := j.pruner.PruneExpiredSessions(ctx, cutoff)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("pruned expired sessions", slog.Int64("removed", removed))
	}
	return nil
}

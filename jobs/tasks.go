// Package jobs holds the background task definitions and the asynq
// worker that runs them. The request-handling path never blocks on any
// of this; the only task is housekeeping over session audit rows.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionsPrune removes expired session audit rows.
	TaskSessionsPrune = "sessions:prune"
)

// SessionsPrunePayload parameterizes a prune run. Grace keeps rows
// around for a while past expiry so recent logins stay inspectable.
type SessionsPrunePayload struct {
	Grace time.Duration `json:"grace"`
}

// NewSessionsPruneTask constructs an asynq task.
func NewSessionsPruneTask(grace time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(SessionsPrunePayload{Grace: grace})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionsPrune, data), nil
}

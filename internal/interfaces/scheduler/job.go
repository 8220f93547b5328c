package scheduler

import "context"

// Job is a unit of work executed by the worker pool. Different job
// types can be implemented (sync jobs, cleanup jobs, notification jobs).
type Job interface {
	// Execute runs the job. The context carries the per-job timeout.
	Execute(ctx context.Context) error

	// UserID returns the user the job belongs to, for logging.
	UserID() string

	// Description returns a human-readable description of the job.
	Description() string
}

package scheduler

import (
	"time"

	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

// Result is the terminal report of one pipeline run: a single overall
// verdict plus the full per-instance status table, enough to identify
// exactly which instances caused downstream skips.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string
	// Status is job.Succeeded or job.Failed. The run succeeds iff every
	// instance that was not statically ineligible reached Succeeded.
	Status job.Status
	// Instances maps each instance key to its terminal status, including
	// instances of statically ineligible jobs (always Skipped).
	Instances map[string]job.Status
	// Err is the root-cause error for a failed run, nil otherwise.
	Err error
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Succeeded reports whether the run as a whole succeeded.
func (r *Result) Succeeded() bool {
	return r.Status == job.Succeeded
}

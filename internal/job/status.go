package job

import "fmt"

// Status is the lifecycle state of a single job instance. Transitions only
// move forward; a terminal status (Succeeded, Failed, Skipped) never changes.
type Status int32

const (
	// Pending means the instance has been created and has no unmet
	// dependencies yet to wait on.
	Pending Status = iota
	// Blocked means the instance is waiting for one or more dependencies.
	Blocked
	// Running means the instance's work is executing.
	Running
	// Succeeded means the instance finished without error.
	Succeeded
	// Failed means the instance's work reported an error.
	Failed
	// Skipped means the instance never ran: either its job was ineligible
	// for the triggering event, or an upstream instance failed.
	Skipped
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Blocked:
		return "blocked"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed || s == Skipped
}

// CanTransition reports whether moving from s to next is a legal forward
// transition.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case Pending:
		return next == Blocked || next == Running || next == Skipped
	case Blocked:
		return next == Running || next == Skipped
	case Running:
		return next == Succeeded || next == Failed
	default:
		return false
	}
}

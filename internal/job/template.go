package job

import (
	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
)

// Condition is a run-condition predicate evaluated against the triggering
// event. A nil Condition means the job is always eligible.
type Condition func(event.Context) bool

// OnKinds builds a Condition that passes when the event kind is one of the
// given kinds.
func OnKinds(kinds ...event.Kind) Condition {
	set := make(map[event.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return func(evt event.Context) bool {
		_, ok := set[evt.Kind]
		return ok
	}
}

// Axis is one matrix cell: a compilation target triple, the operating system
// it produces a binary for, and a short human-readable name. Target and OS
// together identify an instance within its job.
type Axis struct {
	Target      string
	OS          string
	DisplayName string
}

// Template describes one named job before expansion. It is defined
// statically, before any run starts.
type Template struct {
	// Name is the unique job name within the graph.
	Name string
	// Runner names the handler kind that executes this job's instances.
	Runner string
	// DependsOn lists the names of jobs that must succeed first.
	DependsOn []string
	// Condition gates the job on the triggering event; nil means always.
	Condition Condition
	// Axes is the optional build matrix. An empty list means the template
	// expands to a single instance.
	Axes []Axis
}

// Eligible reports whether the job's condition passes for the given event.
func (t *Template) Eligible(evt event.Context) bool {
	if t.Condition == nil {
		return true
	}
	return t.Condition(evt)
}

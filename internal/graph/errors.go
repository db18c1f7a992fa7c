package graph

import "fmt"

// CycleError reports a dependency cycle discovered during validation. It is
// fatal before any instance runs.
type CycleError struct {
	// Job is a job involved in the detected cycle.
	Job string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving job '%s'", e.Job)
}

// UnknownDependencyError reports a depends_on entry that names a job not
// defined in the graph. It is fatal before any instance runs.
type UnknownDependencyError struct {
	// Job is the job whose depends_on list is broken.
	Job string
	// Dependency is the name that failed to resolve.
	Dependency string
}

// Error implements the error interface.
func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("job '%s' depends on undefined job '%s'", e.Job, e.Dependency)
}

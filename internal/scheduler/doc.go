// Package scheduler executes a job graph for a single triggering event. It
// expands eligible jobs into instances, derives the instance-level
// dependency graph (a downstream job waits for every instance of each
// upstream job), and drives a worker pool over a ready channel. Dependency
// joins are event-driven: each instance carries an atomic counter of unmet
// dependencies, and the last succeeding dependency enqueues it. A failure
// marks every transitive dependent skipped; work already in flight is left
// to finish.
package scheduler

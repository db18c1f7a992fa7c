// Package graph holds the job-level dependency graph: named job templates,
// their depends_on edges, validation (cycles, dangling references), and the
// eligibility partition for a triggering event. The instance-level graph the
// scheduler executes is derived from this one.
package graph

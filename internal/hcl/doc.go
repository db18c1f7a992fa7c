// Package hcl loads pipeline definitions from .hcl files: the pipeline
// block naming the project, and one job block per pipeline job with its
// depends_on edges, trigger gating, and optional build matrix. Gating is
// expressed either as an `on` trigger list or as a `when` expression
// evaluated against the triggering event.
package hcl

package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// TargetSchema represents one `target` block inside a job's matrix: a
// compilation target triple, its operating system, and the short name used
// in archive files and instance keys.
type TargetSchema struct {
	Triple string `hcl:"triple"`
	OS     string `hcl:"os"`
	Name   string `hcl:"name"`
}

// MatrixSchema represents the `matrix` block of a job.
type MatrixSchema struct {
	Targets []*TargetSchema `hcl:"target,block"`
}

// JobSchema represents a `job` block from a pipeline file.
type JobSchema struct {
	Name      string         `hcl:"name,label"`
	Run       string         `hcl:"run,optional"`
	DependsOn []string       `hcl:"depends_on,optional"`
	On        []string       `hcl:"on,optional"`
	When      hcl.Expression `hcl:"when,optional"`
	Matrix    *MatrixSchema  `hcl:"matrix,block"`
}

// PipelineSchema represents the top-level `pipeline` block. The label is
// the repository name; the binary name defaults to it.
type PipelineSchema struct {
	Name   string `hcl:"name,label"`
	Binary string `hcl:"binary,optional"`
	Source string `hcl:"source,optional"`
}

// FileSchema represents the full content of one pipeline definition file.
type FileSchema struct {
	Pipeline *PipelineSchema `hcl:"pipeline,block"`
	Jobs     []*JobSchema    `hcl:"job,block"`
}

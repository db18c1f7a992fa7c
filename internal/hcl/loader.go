package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
	"github.com/StrongeLeeroy/ff-log-cli/internal/fsutil"
	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

// Model is the loaded, format-agnostic pipeline definition.
type Model struct {
	// Name is the repository name from the pipeline block.
	Name string
	// Binary is the binary base name used in archive files; defaults to Name.
	Binary string
	// Source is the source tree the collaborators operate on; defaults to ".".
	Source string
	// Jobs holds the job templates in definition order.
	Jobs []*job.Template
}

// Loader parses pipeline definition files into a Model.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under the given paths (files or directories)
// and merges them into a single Model. Exactly one pipeline block must be
// present across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("discovering pipeline files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no pipeline definition files found in %v", paths)
	}
	logger.Debug("Pipeline definition files discovered.", "count", len(files))

	parser := hclparse.NewParser()
	var pipeline *PipelineSchema
	var jobs []*JobSchema
	for _, path := range files {
		f, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
		}
		var schema FileSchema
		if diags := gohcl.DecodeBody(f.Body, nil, &schema); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
		}
		if schema.Pipeline != nil {
			if pipeline != nil {
				return nil, fmt.Errorf("duplicate pipeline block in %s", path)
			}
			pipeline = schema.Pipeline
		}
		jobs = append(jobs, schema.Jobs...)
	}
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline block is required")
	}

	model := &Model{
		Name:   pipeline.Name,
		Binary: pipeline.Binary,
		Source: pipeline.Source,
	}
	if model.Binary == "" {
		// The binary name is derived from the repository name.
		model.Binary = pipeline.Name
	}
	if model.Source == "" {
		model.Source = "."
	}

	for _, s := range jobs {
		t, err := compileJob(s)
		if err != nil {
			return nil, err
		}
		model.Jobs = append(model.Jobs, t)
	}
	logger.Debug("Pipeline model loaded.", "name", model.Name, "jobs", len(model.Jobs))
	return model, nil
}

// compileJob turns a decoded job block into a template, compiling `on` and
// `when` into a run-condition predicate.
func compileJob(s *JobSchema) (*job.Template, error) {
	t := &job.Template{
		Name:      s.Name,
		Runner:    s.Run,
		DependsOn: s.DependsOn,
	}
	if t.Runner == "" {
		t.Runner = s.Name
	}

	if s.Matrix != nil {
		for _, target := range s.Matrix.Targets {
			t.Axes = append(t.Axes, job.Axis{
				Target:      target.Triple,
				OS:          target.OS,
				DisplayName: target.Name,
			})
		}
	}

	cond, err := compileCondition(s)
	if err != nil {
		return nil, fmt.Errorf("job '%s': %w", s.Name, err)
	}
	t.Condition = cond
	return t, nil
}

// compileCondition builds the predicate from the `on` list and the `when`
// expression; when both are present, both must pass.
func compileCondition(s *JobSchema) (job.Condition, error) {
	var kinds []event.Kind
	for _, name := range s.On {
		kind, err := event.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}

	var when hcl.Expression
	if s.When != nil && !exprAbsent(s.When) {
		// Probe the expression against a representative event so unknown
		// variables surface at load time, not mid-run.
		probe := event.Context{Kind: event.Push, Ref: "refs/heads/main"}
		if _, err := evalWhen(s.When, probe); err != nil {
			return nil, err
		}
		when = s.When
	}

	if len(kinds) == 0 && when == nil {
		return nil, nil
	}

	onKinds := job.OnKinds(kinds...)
	return func(evt event.Context) bool {
		if len(kinds) > 0 && !onKinds(evt) {
			return false
		}
		if when != nil {
			ok, err := evalWhen(when, evt)
			if err != nil || !ok {
				return false
			}
		}
		return true
	}, nil
}

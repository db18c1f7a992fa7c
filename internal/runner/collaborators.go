package runner

import "context"

// Checker validates code quality for the test job: formatting, lints, and
// the test suite. It returns the combined tool logs; a non-nil error means
// the check failed.
type Checker interface {
	Check(ctx context.Context, sourceTree string) (string, error)
}

// Auditor runs the dependency security audit once per pipeline. It returns
// the audit report; a non-nil error means a finding or a tool failure.
type Auditor interface {
	Audit(ctx context.Context, sourceTree string) (string, error)
}

// BuildTool cross-compiles the project binary for one matrix cell and
// returns the raw binary blob.
type BuildTool interface {
	Build(ctx context.Context, sourceTree, target, osName string) ([]byte, error)
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
	"github.com/StrongeLeeroy/ff-log-cli/internal/hcl"
	"github.com/StrongeLeeroy/ff-log-cli/internal/release"
	"github.com/StrongeLeeroy/ff-log-cli/internal/runner"
)

// Collaborators bundles the external tools the pipeline drives. Any nil
// field falls back to the command-based default.
type Collaborators struct {
	Checker   runner.Checker
	Auditor   runner.Auditor
	BuildTool runner.BuildTool
	Host      release.Host
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	model  *hcl.Model
	collab Collaborators
	state  runState
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. A failure to load
// the pipeline definition is a fatal startup error and panics; the
// entrypoint recovers it into a clean exit.
func NewApp(outW io.Writer, cfg *Config, loader *hcl.Loader, collab Collaborators) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.PipelinePath)
	if err != nil {
		panic(fmt.Errorf("failed to load pipeline definition: %w", err))
	}
	logger.Debug("Pipeline definition loaded.", "pipeline", model.Name, "jobs", len(model.Jobs))

	fillDefaults(&collab, cfg, model)

	return &App{
		outW:   outW,
		logger: logger,
		model:  model,
		collab: collab,
	}
}

// Model returns the loaded pipeline model. This is primarily for testing.
func (a *App) Model() *hcl.Model {
	return a.model
}

// fillDefaults plugs command-based collaborators into any nil slot. The
// defaults drive the project's own tooling: formatter, linter, and tests
// for the check job, the dependency auditor, and the cross-compiling build.
func fillDefaults(collab *Collaborators, cfg *Config, model *hcl.Model) {
	if collab.Checker == nil {
		collab.Checker = &runner.CommandChecker{
			Commands: [][]string{
				{"cargo", "fmt", "--check"},
				{"cargo", "clippy", "--", "-D", "warnings"},
				{"cargo", "test"},
			},
		}
	}
	if collab.Auditor == nil {
		collab.Auditor = &runner.CommandAuditor{
			Argv: []string{"cargo", "audit"},
		}
	}
	if collab.BuildTool == nil {
		collab.BuildTool = &runner.CommandBuildTool{
			Argv:       []string{"cargo", "build", "--release", "--target", "{target}"},
			OutputPath: "target/{target}/release/" + model.Binary + "{exe}",
		}
	}
	if collab.Host == nil {
		collab.Host = release.NewHTTPHost(cfg.ReleaseURL, cfg.ReleaseToken)
	}
}

package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/StrongeLeeroy/ff-log-cli/internal/artifact"
	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
	"github.com/StrongeLeeroy/ff-log-cli/internal/graph"
	"github.com/StrongeLeeroy/ff-log-cli/internal/release"
	"github.com/StrongeLeeroy/ff-log-cli/internal/runner"
	"github.com/StrongeLeeroy/ff-log-cli/internal/scheduler"
)

// runState holds the outcome of the most recent Run, for inspection by the
// entrypoint and tests.
type runState struct {
	mu        sync.Mutex
	result    *scheduler.Result
	published *release.Record
}

// Run executes the pipeline once for the configured trigger.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	evt, err := event.FromTrigger(cfg.Event, cfg.Ref)
	if err != nil {
		return fmt.Errorf("invalid trigger: %w", err)
	}
	a.logger.Info("Pipeline run starting.",
		"pipeline", a.model.Name, "event", evt.Kind.String(), "ref", evt.Ref)

	g := graph.New()
	for _, t := range a.model.Jobs {
		if err := g.Add(t); err != nil {
			return fmt.Errorf("invalid pipeline definition: %w", err)
		}
	}

	collector := artifact.NewCollector()
	registry := runner.New()
	a.registerHandlers(registry, collector, evt)

	exec := scheduler.New(g, registry, cfg.WorkerCount)
	result := exec.Run(ctx, evt)
	a.state.mu.Lock()
	a.state.result = result
	a.state.mu.Unlock()

	a.logStatusTable(result)

	if !result.Succeeded() {
		if result.Err != nil {
			return fmt.Errorf("pipeline run failed: %w", result.Err)
		}
		return fmt.Errorf("pipeline run failed")
	}
	a.logger.Info("Pipeline run succeeded.",
		"runID", result.RunID, "elapsed", result.Elapsed.String())
	return nil
}

// registerHandlers binds the pipeline's runner kinds to their handlers.
func (a *App) registerHandlers(registry *runner.Registry, collector *artifact.Collector, evt event.Context) {
	publisher := release.NewPublisher(a.collab.Host)
	onPublished := func(rec *release.Record) {
		a.state.mu.Lock()
		a.state.published = rec
		a.state.mu.Unlock()
	}

	registry.Register("test", runner.CheckHandler(a.collab.Checker, a.model.Source))
	registry.Register("security", runner.AuditHandler(a.collab.Auditor, a.model.Source))
	registry.Register("build", runner.BuildHandler(a.collab.BuildTool, collector, a.model.Source, a.model.Binary))
	registry.Register("release", runner.ReleaseHandler(publisher, collector, evt, onPublished))
}

// logStatusTable reports every instance's terminal status in stable order.
func (a *App) logStatusTable(result *scheduler.Result) {
	keys := make([]string, 0, len(result.Instances))
	for key := range result.Instances {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		a.logger.Info("Instance finished.", "instance", key, "status", result.Instances[key].String())
	}
}

// Result returns the outcome of the most recent Run, or nil before any run.
func (a *App) Result() *scheduler.Result {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()
	return a.state.result
}

// PublishedRelease returns the release record published by the most recent
// Run, or nil when nothing was published.
func (a *App) PublishedRelease() *release.Record {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()
	return a.state.published
}

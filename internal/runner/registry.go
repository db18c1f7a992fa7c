package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

// Handler executes one job instance. Handlers must be safe for concurrent
// calls: two matrix instances of the same job may run in parallel.
type Handler func(ctx context.Context, inst *job.Instance) error

// Registry maps runner kinds (a template's Runner field) to their handlers.
// It implements the scheduler's Runner interface.
type Registry struct {
	handlers map[string]Handler
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to a runner kind. Registering the same kind
// twice is a programmer error.
func (r *Registry) Register(kind string, h Handler) {
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("runner handler with kind '%s' already registered", kind))
	}
	slog.Debug("Registering runner handler.", "kind", kind)
	r.handlers[kind] = h
}

// Run dispatches an instance to the handler registered for its job's runner
// kind.
func (r *Registry) Run(ctx context.Context, inst *job.Instance) error {
	h, ok := r.handlers[inst.Job.Runner]
	if !ok {
		return fmt.Errorf("unknown runner kind '%s' for job '%s'", inst.Job.Runner, inst.Job.Name)
	}
	return h(ctx, inst)
}

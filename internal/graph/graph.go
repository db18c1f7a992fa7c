package graph

import (
	"fmt"

	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

// Graph is a directed acyclic graph of named job templates. Jobs keep their
// insertion order so runs and reports are deterministic.
type Graph struct {
	jobs  map[string]*job.Template
	order []string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{jobs: make(map[string]*job.Template)}
}

// Add registers a job template. Adding two jobs with the same name is a
// definition error.
func (g *Graph) Add(t *job.Template) error {
	if t.Name == "" {
		return fmt.Errorf("job name must not be empty")
	}
	if _, exists := g.jobs[t.Name]; exists {
		return fmt.Errorf("job '%s' defined twice", t.Name)
	}
	g.jobs[t.Name] = t
	g.order = append(g.order, t.Name)
	return nil
}

// Job returns the template with the given name, if present.
func (g *Graph) Job(name string) (*job.Template, bool) {
	t, ok := g.jobs[name]
	return t, ok
}

// Jobs returns all templates in insertion order.
func (g *Graph) Jobs() []*job.Template {
	out := make([]*job.Template, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.jobs[name])
	}
	return out
}

// Validate checks the graph definition. It returns an UnknownDependencyError
// if a depends_on entry names an undefined job, or a CycleError if the
// dependency relation contains a cycle.
func (g *Graph) Validate() error {
	for _, name := range g.order {
		for _, dep := range g.jobs[name].DependsOn {
			if _, ok := g.jobs[dep]; !ok {
				return &UnknownDependencyError{Job: name, Dependency: dep}
			}
		}
	}

	// Depth-first search with a recursion-stack set, as in classic cycle
	// detection: "visiting" holds the current path, "visited" the jobs
	// already proven safe.
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		visiting[name] = true
		for _, dep := range g.jobs[name].DependsOn {
			if visiting[dep] {
				return &CycleError{Job: dep}
			}
			if !visited[dep] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, name)
		visited[name] = true
		return nil
	}

	for _, name := range g.order {
		if !visited[name] {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Eligible partitions the graph for a triggering event. It returns the jobs
// whose condition passes and whose every transitive dependency also passes,
// in insertion order, plus the names of the jobs skipped. A skipped
// dependency can never succeed, so the skip propagates to otherwise-eligible
// descendants. Eligible assumes Validate has passed.
func (g *Graph) Eligible(evt event.Context) (active []*job.Template, skipped []string) {
	memo := make(map[string]bool, len(g.jobs))

	var eligible func(name string) bool
	eligible = func(name string) bool {
		if v, ok := memo[name]; ok {
			return v
		}
		t := g.jobs[name]
		ok := t.Eligible(evt)
		for _, dep := range t.DependsOn {
			if !eligible(dep) {
				ok = false
			}
		}
		memo[name] = ok
		return ok
	}

	for _, name := range g.order {
		if eligible(name) {
			active = append(active, g.jobs[name])
		} else {
			skipped = append(skipped, name)
		}
	}
	return active, skipped
}

package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
	"github.com/StrongeLeeroy/ff-log-cli/internal/graph"
	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

// defaultWorkers bounds the pool when the caller does not.
const defaultWorkers = 8

// Runner executes a single job instance. Implementations must be safe for
// concurrent calls; instances in the same wave run fully in parallel.
type Runner interface {
	Run(ctx context.Context, inst *job.Instance) error
}

// Executor walks a job graph in dependency order for one triggering event.
type Executor struct {
	graph      *graph.Graph
	runner     Runner
	numWorkers int
	wg         sync.WaitGroup
}

// New creates an Executor over the given graph and runner. workers <= 0
// selects the default pool size.
func New(g *graph.Graph, runner Runner, workers int) *Executor {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Executor{graph: g, runner: runner, numWorkers: workers}
}

// Run executes the graph for the given event and returns the terminal
// result. Definition errors (cycles, dangling depends_on) fail the run
// before any instance starts.
func (e *Executor) Run(ctx context.Context, evt event.Context) *Result {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		Instances: make(map[string]job.Status),
	}

	if err := e.graph.Validate(); err != nil {
		logger.Error("Pipeline definition is invalid.", "error", err)
		result.Status = job.Failed
		result.Err = err
		result.Elapsed = time.Since(start)
		return result
	}

	active, skippedJobs := e.graph.Eligible(evt)
	for _, name := range skippedJobs {
		t, _ := e.graph.Job(name)
		for _, inst := range job.Expand(t) {
			logger.Info("Job not eligible for event, skipping.",
				"instance", inst.Key(), "event", evt.Kind.String())
			result.Instances[inst.Key()] = job.Skipped
		}
	}

	nodes := e.buildInstanceGraph(active)

	readyChan := make(chan *instanceNode, len(nodes))
	rootCount := 0
	for _, n := range nodes {
		if n.depCount.Load() == 0 {
			// Nodes start Pending by construction.
			readyChan <- n
			rootCount++
		} else {
			n.setStatus(job.Blocked)
		}
	}
	logger.Debug("Instance graph ready.",
		"instances", len(nodes), "roots", rootCount, "workers", e.numWorkers)

	e.wg.Add(len(nodes))
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(ctx, readyChan, i)
	}
	e.wg.Wait()
	close(readyChan)

	e.collect(nodes, result)
	result.Elapsed = time.Since(start)
	return result
}

// buildInstanceGraph expands every active job and links instances so that
// each instance of a downstream job depends on every instance of each
// upstream job it names.
func (e *Executor) buildInstanceGraph(active []*job.Template) map[string]*instanceNode {
	nodes := make(map[string]*instanceNode)
	byJob := make(map[string][]*instanceNode)

	for _, t := range active {
		for _, inst := range job.Expand(t) {
			n := newInstanceNode(inst)
			nodes[inst.Key()] = n
			byJob[t.Name] = append(byJob[t.Name], n)
		}
	}

	for _, t := range active {
		for _, dep := range t.DependsOn {
			for _, upstream := range byJob[dep] {
				for _, downstream := range byJob[t.Name] {
					downstream.deps[upstream.inst.Key()] = upstream
					upstream.dependents[downstream.inst.Key()] = downstream
				}
			}
		}
	}

	for _, n := range nodes {
		n.depCount.Store(int32(len(n.deps)))
	}
	return nodes
}

// worker is the processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *instanceNode, workerID int) {
	logger := ctxlog.FromContext(ctx)

	for n := range readyChan {
		workerLogger := logger.With("workerID", workerID, "instance", n.inst.Key())

		if ctx.Err() != nil {
			n.skipOnce.Do(func() {
				workerLogger.Warn("Context canceled, instance will not run.")
				// Claim the node so the failure moves through Running.
				n.claimRun()
				n.setStatus(job.Failed)
				n.err = ctx.Err()
				e.wg.Done()
			})
			e.skipDependents(ctx, n)
			continue
		}

		if !n.claimRun() {
			// Already skipped by an upstream failure.
			continue
		}

		workerLogger.Debug("Instance started.")
		if err := e.runner.Run(ctx, n.inst); err != nil {
			workerLogger.Error("Instance failed.", "error", err)
			n.setStatus(job.Failed)
			n.err = err
			e.skipDependents(ctx, n)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Instance succeeded.")
		n.setStatus(job.Succeeded)

		for _, dependent := range n.dependents {
			if dependent.depCount.Add(-1) == 0 {
				workerLogger.Debug("Unblocking dependent instance.",
					"dependent", dependent.inst.Key())
				readyChan <- dependent
			}
		}
		e.wg.Done()
	}
}

// skipDependents marks every transitive dependent of a failed instance as
// skipped. A skipped instance never becomes runnable: its dependency counter
// never reaches zero, so it is never enqueued. In-flight instances are not
// preempted; failure only stops new work.
func (e *Executor) skipDependents(ctx context.Context, n *instanceNode) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range n.dependents {
		dependent.skipOnce.Do(func() {
			logger.Warn("Skipping instance due to upstream failure.",
				"instance", dependent.inst.Key(), "dependency", n.inst.Key())
			dependent.setStatus(job.Skipped)
			dependent.err = fmt.Errorf("skipped due to upstream failure of '%s'", n.inst.Key())
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		})
	}
}

// collect fills the result table and computes the overall verdict. The run
// succeeds iff every instance that was expected to run reached Succeeded;
// failure-caused skips count against the run, statically ineligible jobs do
// not.
func (e *Executor) collect(nodes map[string]*instanceNode, result *Result) {
	keys := make([]string, 0, len(nodes))
	for key := range nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var failedKeys []string
	var rootCause error
	allSucceeded := true
	for _, key := range keys {
		n := nodes[key]
		status := n.status()
		result.Instances[key] = status
		if status != job.Succeeded {
			allSucceeded = false
		}
		if status == job.Failed {
			failedKeys = append(failedKeys, key)
			if rootCause == nil {
				rootCause = n.err
			}
		}
	}

	if allSucceeded {
		result.Status = job.Succeeded
		return
	}
	result.Status = job.Failed
	if rootCause != nil {
		result.Err = fmt.Errorf("execution failed for %s: %w",
			strings.Join(failedKeys, ", "), rootCause)
	}
}

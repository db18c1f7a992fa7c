package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

// instanceNode is one vertex of the instance-level execution graph. It pairs
// a job instance with the mutable state the executor tracks for it.
type instanceNode struct {
	inst *job.Instance

	// deps and dependents hold the instance-level edges, keyed by instance key.
	deps       map[string]*instanceNode
	dependents map[string]*instanceNode

	// depCount counts unmet dependencies; the decrement that reaches zero
	// enqueues the node. This is the join barrier over all instances of the
	// upstream jobs.
	depCount atomic.Int32

	// state holds the job.Status, managed atomically.
	state atomic.Int32

	// err records why the instance failed or was skipped.
	err error

	// skipOnce ensures the node is marked skipped and counted exactly once,
	// even when several upstream failures race to skip it.
	skipOnce sync.Once
}

func newInstanceNode(inst *job.Instance) *instanceNode {
	return &instanceNode{
		inst:       inst,
		deps:       make(map[string]*instanceNode),
		dependents: make(map[string]*instanceNode),
	}
}

func (n *instanceNode) status() job.Status {
	return job.Status(n.state.Load())
}

// setStatus advances the node's status. An illegal transition is a
// programmer error in the executor, not a runtime condition.
func (n *instanceNode) setStatus(s job.Status) {
	cur := n.status()
	if !cur.CanTransition(s) {
		panic(fmt.Sprintf("illegal status transition %s -> %s for instance '%s'",
			cur, s, n.inst.Key()))
	}
	n.state.Store(int32(s))
}

// claimRun atomically moves the node from Pending or Blocked to Running.
// It fails when the node was already skipped.
func (n *instanceNode) claimRun() bool {
	return n.state.CompareAndSwap(int32(job.Pending), int32(job.Running)) ||
		n.state.CompareAndSwap(int32(job.Blocked), int32(job.Running))
}

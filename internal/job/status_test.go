package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	cases := map[Status]string{
		Pending:   "pending",
		Blocked:   "blocked",
		Running:   "running",
		Succeeded: "succeeded",
		Failed:    "failed",
		Skipped:   "skipped",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.String())
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, Pending.Terminal())
	assert.False(t, Blocked.Terminal())
	assert.False(t, Running.Terminal())
	assert.True(t, Succeeded.Terminal())
	assert.True(t, Failed.Terminal())
	assert.True(t, Skipped.Terminal())
}

func TestStatus_CanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		Pending: {Blocked, Running, Skipped},
		Blocked: {Running, Skipped},
		Running: {Succeeded, Failed},
	}

	all := []Status{Pending, Blocked, Running, Succeeded, Failed, Skipped}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransition(to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestStatus_TerminalStatesNeverTransition(t *testing.T) {
	all := []Status{Pending, Blocked, Running, Succeeded, Failed, Skipped}
	for _, terminal := range []Status{Succeeded, Failed, Skipped} {
		for _, to := range all {
			assert.False(t, terminal.CanTransition(to),
				"terminal status %s must not transition to %s", terminal, to)
		}
	}
}

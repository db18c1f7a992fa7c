package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

func TestAdd(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "test"}))
		require.NoError(t, g.Add(&job.Template{Name: "build", DependsOn: []string{"test"}}))

		jobs := g.Jobs()
		require.Len(t, jobs, 2)
		assert.Equal(t, "test", jobs[0].Name)
		assert.Equal(t, "build", jobs[1].Name)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "test"}))

		err := g.Add(&job.Template{Name: "test"})
		assert.ErrorContains(t, err, "defined twice")

		err = g.Add(&job.Template{Name: ""})
		assert.ErrorContains(t, err, "must not be empty")
	})
}

func TestValidate(t *testing.T) {
	t.Run("empty graph is valid", func(t *testing.T) {
		assert.NoError(t, New().Validate())
	})

	t.Run("diamond is valid", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "a"}))
		require.NoError(t, g.Add(&job.Template{Name: "b", DependsOn: []string{"a"}}))
		require.NoError(t, g.Add(&job.Template{Name: "c", DependsOn: []string{"a"}}))
		require.NoError(t, g.Add(&job.Template{Name: "d", DependsOn: []string{"b", "c"}}))
		assert.NoError(t, g.Validate())
	})

	t.Run("unknown dependency", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "build", DependsOn: []string{"missing"}}))

		err := g.Validate()
		require.Error(t, err)
		var unknownErr *UnknownDependencyError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "build", unknownErr.Job)
		assert.Equal(t, "missing", unknownErr.Dependency)
	})

	t.Run("two-node cycle", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "a", DependsOn: []string{"b"}}))
		require.NoError(t, g.Add(&job.Template{Name: "b", DependsOn: []string{"a"}}))

		err := g.Validate()
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
	})

	t.Run("self-reference is a cycle", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "a", DependsOn: []string{"a"}}))

		err := g.Validate()
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, "a", cycleErr.Job)
	})

	t.Run("long cycle behind a valid prefix", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "root"}))
		require.NoError(t, g.Add(&job.Template{Name: "a", DependsOn: []string{"root", "c"}}))
		require.NoError(t, g.Add(&job.Template{Name: "b", DependsOn: []string{"a"}}))
		require.NoError(t, g.Add(&job.Template{Name: "c", DependsOn: []string{"b"}}))

		err := g.Validate()
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
	})
}

func TestEligible(t *testing.T) {
	pushEvt := event.Context{Kind: event.Push, Ref: "refs/heads/main"}
	tagEvt := event.Context{Kind: event.Tag, Ref: "refs/tags/v1.0.0"}

	buildGraph := func(t *testing.T) *Graph {
		t.Helper()
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "test"}))
		require.NoError(t, g.Add(&job.Template{Name: "security"}))
		require.NoError(t, g.Add(&job.Template{Name: "build", DependsOn: []string{"test", "security"}}))
		require.NoError(t, g.Add(&job.Template{
			Name:      "release",
			DependsOn: []string{"build"},
			Condition: job.OnKinds(event.Tag),
		}))
		require.NoError(t, g.Validate())
		return g
	}

	t.Run("tag event activates everything", func(t *testing.T) {
		active, skipped := buildGraph(t).Eligible(tagEvt)
		names := make([]string, 0, len(active))
		for _, tmpl := range active {
			names = append(names, tmpl.Name)
		}
		assert.Equal(t, []string{"test", "security", "build", "release"}, names)
		assert.Empty(t, skipped)
	})

	t.Run("push event skips the gated job", func(t *testing.T) {
		active, skipped := buildGraph(t).Eligible(pushEvt)
		names := make([]string, 0, len(active))
		for _, tmpl := range active {
			names = append(names, tmpl.Name)
		}
		assert.Equal(t, []string{"test", "security", "build"}, names)
		assert.Equal(t, []string{"release"}, skipped)
	})

	t.Run("skip propagates to eligible descendants", func(t *testing.T) {
		g := New()
		require.NoError(t, g.Add(&job.Template{Name: "gated", Condition: job.OnKinds(event.Tag)}))
		// publish has no condition of its own but can never run on a push:
		// its dependency is skipped and a skipped job never succeeds.
		require.NoError(t, g.Add(&job.Template{Name: "publish", DependsOn: []string{"gated"}}))
		require.NoError(t, g.Add(&job.Template{Name: "announce", DependsOn: []string{"publish"}}))
		require.NoError(t, g.Validate())

		active, skipped := g.Eligible(pushEvt)
		assert.Empty(t, active)
		assert.Equal(t, []string{"gated", "publish", "announce"}, skipped)
	})
}

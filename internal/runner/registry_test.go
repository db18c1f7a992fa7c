package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
)

func instanceFor(name, runnerKind string) *job.Instance {
	return &job.Instance{Job: &job.Template{Name: name, Runner: runnerKind}}
}

func TestRegistry_DispatchesByRunnerKind(t *testing.T) {
	reg := New()
	var ran []string
	reg.Register("test", func(ctx context.Context, inst *job.Instance) error {
		ran = append(ran, inst.Job.Name)
		return nil
	})
	reg.Register("build", func(ctx context.Context, inst *job.Instance) error {
		return errors.New("boom")
	})

	require.NoError(t, reg.Run(context.Background(), instanceFor("unit-tests", "test")))
	assert.Equal(t, []string{"unit-tests"}, ran)

	err := reg.Run(context.Background(), instanceFor("build", "build"))
	assert.EqualError(t, err, "boom")
}

func TestRegistry_UnknownKind(t *testing.T) {
	reg := New()
	err := reg.Run(context.Background(), instanceFor("deploy", "deploy"))
	assert.ErrorContains(t, err, "unknown runner kind 'deploy'")
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	reg := New()
	reg.Register("test", func(ctx context.Context, inst *job.Instance) error { return nil })
	assert.PanicsWithValue(t, "runner handler with kind 'test' already registered", func() {
		reg.Register("test", func(ctx context.Context, inst *job.Instance) error { return nil })
	})
}

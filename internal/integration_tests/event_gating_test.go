package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrongeLeeroy/ff-log-cli/internal/app"
	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
	"github.com/StrongeLeeroy/ff-log-cli/internal/testutil"
)

// Test for: a push run builds everything but never publishes, and the
// gated-out release does not count against the run verdict.
func TestEventGating_PushRunSkipsReleaseButSucceeds(t *testing.T) {
	// --- Arrange ---
	host := &testutil.FakeHost{}
	buildTool := &testutil.FakeBuildTool{}
	collab := app.Collaborators{
		Checker:   &testutil.FakeChecker{},
		Auditor:   &testutil.FakeAuditor{},
		BuildTool: buildTool,
		Host:      host,
	}
	files := map[string]string{"pipeline.hcl": testutil.DefaultPipelineHCL}

	// --- Act ---
	res := testutil.RunPipeline(t, files, "push", "refs/heads/main", collab)

	// --- Assert ---
	require.NoError(t, res.Err)
	result := res.App.Result()
	require.NotNil(t, result)
	assert.True(t, result.Succeeded())
	assert.Equal(t, map[string]job.Status{
		"test":            job.Succeeded,
		"security":        job.Succeeded,
		"build#win-x64":   job.Succeeded,
		"build#win-arm64": job.Succeeded,
		"release":         job.Skipped,
	}, result.Instances)

	assert.Len(t, buildTool.Targets(), 2)
	assert.Empty(t, host.Published())
	assert.Nil(t, res.App.PublishedRelease())
}

// Test for: a pull_request run behaves like a push run for the release
// gate; only the trigger name differs.
func TestEventGating_PullRequestRunSkipsRelease(t *testing.T) {
	// --- Arrange ---
	host := &testutil.FakeHost{}
	collab := app.Collaborators{
		Checker:   &testutil.FakeChecker{},
		Auditor:   &testutil.FakeAuditor{},
		BuildTool: &testutil.FakeBuildTool{},
		Host:      host,
	}
	files := map[string]string{"pipeline.hcl": testutil.DefaultPipelineHCL}

	// --- Act ---
	res := testutil.RunPipeline(t, files, "pull_request", "refs/heads/feature", collab)

	// --- Assert ---
	require.NoError(t, res.Err)
	result := res.App.Result()
	require.NotNil(t, result)
	assert.True(t, result.Succeeded())
	assert.Equal(t, job.Skipped, result.Instances["release"])
	assert.Empty(t, host.Published())
}

// Test for: a job gated on tag events drags its exclusive dependents out
// of a push run with it, without failing the run.
func TestEventGating_GatedJobExcludesExclusiveDependents(t *testing.T) {
	// --- Arrange ---
	pipelineHCL := `
pipeline "ff-log-cli" {}

job "test" {
}

job "release" {
  depends_on = ["test"]
  on         = ["tag"]
}

job "announce" {
  run        = "test"
  depends_on = ["release"]
}
`
	host := &testutil.FakeHost{}
	checker := &testutil.FakeChecker{}
	collab := app.Collaborators{
		Checker:   checker,
		Auditor:   &testutil.FakeAuditor{},
		BuildTool: &testutil.FakeBuildTool{},
		Host:      host,
	}
	files := map[string]string{"pipeline.hcl": pipelineHCL}

	// --- Act ---
	res := testutil.RunPipeline(t, files, "push", "refs/heads/main", collab)

	// --- Assert ---
	require.NoError(t, res.Err)
	result := res.App.Result()
	require.NotNil(t, result)
	assert.True(t, result.Succeeded())
	assert.Equal(t, map[string]job.Status{
		"test":     job.Succeeded,
		"release":  job.Skipped,
		"announce": job.Skipped,
	}, result.Instances)
	// Only the ungated job ran its handler.
	assert.Equal(t, 1, checker.Calls())
}

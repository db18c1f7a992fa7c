package integration_tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrongeLeeroy/ff-log-cli/internal/app"
	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
	"github.com/StrongeLeeroy/ff-log-cli/internal/testutil"
)

// Test for: a security-audit failure skips every downstream build instance
// and the release, fails the run, and publishes nothing.
func TestFailureSkip_AuditFailureSkipsBuildsAndRelease(t *testing.T) {
	// --- Arrange ---
	host := &testutil.FakeHost{}
	buildTool := &testutil.FakeBuildTool{}
	collab := app.Collaborators{
		Checker:   &testutil.FakeChecker{},
		Auditor:   &testutil.FakeAuditor{Err: errors.New("RUSTSEC-2026-0001: vulnerable dependency")},
		BuildTool: buildTool,
		Host:      host,
	}
	files := map[string]string{"pipeline.hcl": testutil.DefaultPipelineHCL}

	// --- Act ---
	res := testutil.RunPipeline(t, files, "tag", "refs/tags/v1.2.3", collab)

	// --- Assert ---
	require.Error(t, res.Err)
	assert.ErrorContains(t, res.Err, "security")

	result := res.App.Result()
	require.NotNil(t, result)
	assert.False(t, result.Succeeded())
	assert.Equal(t, map[string]job.Status{
		"test":            job.Succeeded,
		"security":        job.Failed,
		"build#win-x64":   job.Skipped,
		"build#win-arm64": job.Skipped,
		"release":         job.Skipped,
	}, result.Instances)

	// No build ever started and nothing reached the release host.
	assert.Empty(t, buildTool.Targets())
	assert.Empty(t, host.Published())
	assert.Nil(t, res.App.PublishedRelease())
}

// Test for: one failing matrix cell skips the release but leaves the
// sibling cells to finish on their own.
func TestFailureSkip_OneBuildCellFailureStillFinishesSiblings(t *testing.T) {
	// --- Arrange ---
	host := &testutil.FakeHost{}
	checker := &testutil.FakeChecker{}
	collab := app.Collaborators{
		Checker:   checker,
		Auditor:   &testutil.FakeAuditor{},
		BuildTool: &testutil.FakeBuildTool{Err: errors.New("linker error")},
		Host:      host,
	}
	files := map[string]string{"pipeline.hcl": testutil.DefaultPipelineHCL}

	// --- Act ---
	res := testutil.RunPipeline(t, files, "tag", "refs/tags/v1.2.3", collab)

	// --- Assert ---
	require.Error(t, res.Err)
	result := res.App.Result()
	require.NotNil(t, result)
	assert.False(t, result.Succeeded())
	assert.Equal(t, job.Failed, result.Instances["build#win-x64"])
	assert.Equal(t, job.Failed, result.Instances["build#win-arm64"])
	assert.Equal(t, job.Skipped, result.Instances["release"])
	assert.Equal(t, job.Succeeded, result.Instances["test"])
	assert.Empty(t, host.Published())
}

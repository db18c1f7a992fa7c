package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/StrongeLeeroy/ff-log-cli/internal/app"
	"github.com/StrongeLeeroy/ff-log-cli/internal/hcl"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// DefaultPipelineHCL is the pipeline definition used by harness tests that
// do not bring their own: the canonical test/security/matrix-build/release
// shape with two windows cells.
const DefaultPipelineHCL = `
pipeline "ff-log-cli" {
  source = "."
}

job "test" {
}

job "security" {
}

job "build" {
  depends_on = ["test", "security"]

  matrix {
    target {
      triple = "x86_64-pc-windows-msvc"
      os     = "windows"
      name   = "win-x64"
    }
    target {
      triple = "aarch64-pc-windows-msvc"
      os     = "windows"
      name   = "win-arm64"
    }
  }
}

job "release" {
  depends_on = ["build"]
  on         = ["tag"]
}
`

// RunPipeline provides a standardized harness for running a full pipeline
// in tests: it writes the given .hcl files to a temporary directory, builds
// the app around the provided fake collaborators, and runs it for the given
// trigger. A startup panic fails the test immediately, so callers can rely
// on App being non-nil.
func RunPipeline(t *testing.T, files map[string]string, eventName, ref string, collab app.Collaborators) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig, err := app.NewConfig(app.Config{
		PipelinePath: tmpDir,
		Event:        eventName,
		Ref:          ref,
		LogFormat:    "text",
		LogLevel:     "debug",
		WorkerCount:  4,
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("application startup panicked | %v", r)
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), collab)
	}()

	runErr := testApp.Run(context.Background(), appConfig)

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
)

// targetToken is substituted with the matrix target triple in command
// arguments and output paths. exeToken becomes ".exe" for windows cells and
// empty otherwise.
const (
	targetToken = "{target}"
	exeToken    = "{exe}"
)

// runCommand executes one collaborator command in the source tree and
// returns its combined output. The command's own exit status is the
// pass/fail signal.
func runCommand(ctx context.Context, sourceTree, name string, args ...string) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Invoking external tool.", "command", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = sourceTree
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w\n%s", name, strings.Join(args, " "), err, string(out))
	}
	return string(out), nil
}

// CommandChecker runs a sequence of quality-check commands (formatter in
// check mode, linter, test suite) and fails on the first non-zero exit.
type CommandChecker struct {
	// Commands holds one argv per check, run in order.
	Commands [][]string
}

// Check implements the Checker interface.
func (c *CommandChecker) Check(ctx context.Context, sourceTree string) (string, error) {
	var logs strings.Builder
	for _, argv := range c.Commands {
		if len(argv) == 0 {
			continue
		}
		out, err := runCommand(ctx, sourceTree, argv[0], argv[1:]...)
		logs.WriteString(out)
		if err != nil {
			return logs.String(), err
		}
	}
	return logs.String(), nil
}

// CommandAuditor runs the dependency audit tool as a single command.
type CommandAuditor struct {
	// Argv is the audit command line.
	Argv []string
}

// Audit implements the Auditor interface.
func (a *CommandAuditor) Audit(ctx context.Context, sourceTree string) (string, error) {
	if len(a.Argv) == 0 {
		return "", fmt.Errorf("auditor command is not configured")
	}
	return runCommand(ctx, sourceTree, a.Argv[0], a.Argv[1:]...)
}

// CommandBuildTool cross-compiles by invoking the project's build command
// with the target triple substituted, then reads the produced binary from
// OutputPath (relative to the source tree, with the same substitution).
type CommandBuildTool struct {
	// Argv is the build command line; occurrences of "{target}" are
	// replaced with the matrix target triple.
	Argv []string
	// OutputPath locates the compiled binary after a successful build.
	OutputPath string
}

// Build implements the BuildTool interface.
func (t *CommandBuildTool) Build(ctx context.Context, sourceTree, target, osName string) ([]byte, error) {
	if len(t.Argv) == 0 {
		return nil, fmt.Errorf("build command is not configured")
	}

	exe := ""
	if osName == "windows" {
		exe = ".exe"
	}
	expand := func(s string) string {
		s = strings.ReplaceAll(s, targetToken, target)
		return strings.ReplaceAll(s, exeToken, exe)
	}

	argv := make([]string, len(t.Argv))
	for i, arg := range t.Argv {
		argv[i] = expand(arg)
	}
	if _, err := runCommand(ctx, sourceTree, argv[0], argv[1:]...); err != nil {
		return nil, err
	}

	binPath := filepath.Join(sourceTree, expand(t.OutputPath))
	blob, err := os.ReadFile(binPath)
	if err != nil {
		return nil, fmt.Errorf("reading built binary %s: %w", binPath, err)
	}
	return blob, nil
}

// Package testutil provides the shared fakes and the integration harness
// used by the pipeline's test suites.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/StrongeLeeroy/ff-log-cli/internal/release"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// FakeChecker is an in-memory Checker: it passes unless Err is set.
type FakeChecker struct {
	Err error

	mu    sync.Mutex
	calls int
}

// Check implements the runner.Checker interface.
func (f *FakeChecker) Check(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return "all checks passed", nil
}

// Calls returns how many times Check ran.
func (f *FakeChecker) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeAuditor is an in-memory Auditor: it passes unless Err is set.
type FakeAuditor struct {
	Err error

	mu    sync.Mutex
	calls int
}

// Audit implements the runner.Auditor interface.
func (f *FakeAuditor) Audit(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return "no vulnerable dependencies", nil
}

// Calls returns how many times Audit ran.
func (f *FakeAuditor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeBuildTool is an in-memory BuildTool producing a deterministic blob
// per target, unless Err is set.
type FakeBuildTool struct {
	Err error

	mu      sync.Mutex
	targets []string
}

// Build implements the runner.BuildTool interface.
func (f *FakeBuildTool) Build(_ context.Context, _, target, osName string) ([]byte, error) {
	f.mu.Lock()
	f.targets = append(f.targets, target)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return []byte(fmt.Sprintf("binary for %s on %s", target, osName)), nil
}

// Targets returns the target triples built so far.
func (f *FakeBuildTool) Targets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.targets...)
}

// FakeHost is an in-memory release host. It records every published record
// and assigns each a fresh id, unless Err is set.
type FakeHost struct {
	Err error

	mu        sync.Mutex
	published []*release.Record
}

// PublishRelease implements the release.Host interface.
func (f *FakeHost) PublishRelease(_ context.Context, rec *release.Record) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, rec)
	return uuid.NewString(), nil
}

// Published returns the records published so far.
func (f *FakeHost) Published() []*release.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*release.Record(nil), f.published...)
}

package runner

import (
	"context"
	"fmt"

	"github.com/StrongeLeeroy/ff-log-cli/internal/archive"
	"github.com/StrongeLeeroy/ff-log-cli/internal/artifact"
	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
	"github.com/StrongeLeeroy/ff-log-cli/internal/job"
	"github.com/StrongeLeeroy/ff-log-cli/internal/release"
)

// CheckHandler runs the quality checker over the source tree.
func CheckHandler(checker Checker, sourceTree string) Handler {
	return func(ctx context.Context, inst *job.Instance) error {
		logger := ctxlog.FromContext(ctx).With("instance", inst.Key())
		logger.Info("Running quality checks.")
		logs, err := checker.Check(ctx, sourceTree)
		if err != nil {
			return fmt.Errorf("quality checks failed: %w", err)
		}
		logger.Debug("Quality checks passed.", "logs", logs)
		return nil
	}
}

// AuditHandler runs the dependency security audit.
func AuditHandler(auditor Auditor, sourceTree string) Handler {
	return func(ctx context.Context, inst *job.Instance) error {
		logger := ctxlog.FromContext(ctx).With("instance", inst.Key())
		logger.Info("Running dependency audit.")
		report, err := auditor.Audit(ctx, sourceTree)
		if err != nil {
			return fmt.Errorf("dependency audit failed: %w", err)
		}
		logger.Debug("Dependency audit passed.", "report", report)
		return nil
	}
}

// BuildHandler compiles the binary for the instance's matrix cell, packages
// it into the conventionally named archive, and stores it in the collector
// under the instance's key.
func BuildHandler(tool BuildTool, collector *artifact.Collector, sourceTree, binary string) Handler {
	return func(ctx context.Context, inst *job.Instance) error {
		if inst.Axis == nil {
			return fmt.Errorf("build job '%s' requires a matrix axis", inst.Job.Name)
		}
		logger := ctxlog.FromContext(ctx).With("instance", inst.Key())
		logger.Info("Building binary.", "target", inst.Axis.Target, "os", inst.Axis.OS)

		blob, err := tool.Build(ctx, sourceTree, inst.Axis.Target, inst.Axis.OS)
		if err != nil {
			return fmt.Errorf("building target %s: %w", inst.Axis.Target, err)
		}

		name, data, err := archive.Package(binary, inst.Axis.DisplayName, inst.Axis.OS, blob)
		if err != nil {
			return err
		}
		collector.Put(inst.Key(), name, data)
		logger.Info("Archive collected.", "archive", name, "bytes", len(data))
		return nil
	}
}

// ReleaseHandler publishes the release from a frozen snapshot of the
// collector. The scheduler guarantees the snapshot is taken only after
// every build instance succeeded. The onPublished callback, when non-nil,
// receives the published record.
func ReleaseHandler(publisher *release.Publisher, collector *artifact.Collector, evt event.Context, onPublished func(*release.Record)) Handler {
	return func(ctx context.Context, inst *job.Instance) error {
		rec, err := publisher.Publish(ctx, evt, collector.All())
		if err != nil {
			return err
		}
		if rec != nil && onPublished != nil {
			onPublished(rec)
		}
		return nil
	}
}

// Package release publishes the final release record for a tag-triggered
// run. The publisher owns the tag gate and the prerelease classification;
// the actual upload goes through the narrow Host collaborator and is never
// retried here.
package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/StrongeLeeroy/ff-log-cli/internal/artifact"
	"github.com/StrongeLeeroy/ff-log-cli/internal/ctxlog"
	"github.com/StrongeLeeroy/ff-log-cli/internal/event"
)

// Record is the release emitted at the end of a successful tag-triggered
// run. It aggregates every collected artifact without deduplication.
type Record struct {
	// ID is the identifier assigned by the release host.
	ID string
	// Tag is the version tag the run was triggered by.
	Tag string
	// Prerelease marks the release as a prerelease based on the tag text.
	Prerelease bool
	// Body is the auto-generated release description.
	Body string
	// Files holds every collected archive, across all producer instances.
	Files []artifact.Artifact
}

// Host is the external release host. PublishRelease stores the record and
// returns the host-assigned release identifier; any error is fatal for the
// run.
type Host interface {
	PublishRelease(ctx context.Context, rec *Record) (string, error)
}

// prereleaseMarkers are matched as raw, case-sensitive substrings anywhere
// in the tag. A tag like "v1.0.0-stable-rc-notes" therefore also counts as
// a prerelease; the match is deliberately not semver-aware.
var prereleaseMarkers = []string{"alpha", "beta", "rc"}

// IsPrerelease classifies a tag by substring match on its raw text.
func IsPrerelease(tag string) bool {
	for _, marker := range prereleaseMarkers {
		if strings.Contains(tag, marker) {
			return true
		}
	}
	return false
}

// Publisher assembles and publishes release records.
type Publisher struct {
	host Host
}

// NewPublisher creates a Publisher backed by the given host.
func NewPublisher(host Host) *Publisher {
	return &Publisher{host: host}
}

// Publish emits the release for a tag-triggered run. For any other event
// kind it publishes nothing and returns (nil, nil): the caller observes a
// skipped publication. A host error is returned wrapped and ends the run
// failed; no partial release is retried or rolled back here.
func (p *Publisher) Publish(ctx context.Context, evt event.Context, artifacts []artifact.Artifact) (*Record, error) {
	logger := ctxlog.FromContext(ctx)

	if evt.Kind != event.Tag {
		logger.Debug("Not a tag event, skipping release publication.", "event", evt.Kind.String())
		return nil, nil
	}

	tag := evt.TagName()
	rec := &Record{
		Tag:        tag,
		Prerelease: IsPrerelease(tag),
		Body:       Description(tag, artifacts),
		Files:      artifacts,
	}

	logger.Info("Publishing release.",
		"tag", tag, "prerelease", rec.Prerelease, "files", len(artifacts))
	id, err := p.host.PublishRelease(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("publishing release %q: %w", tag, err)
	}
	rec.ID = id
	logger.Info("Release published.", "tag", tag, "releaseID", id)
	return rec, nil
}

// Description renders the auto-generated release body: the tag headline and
// one line per archive, in the collector's stable order.
func Description(tag string, artifacts []artifact.Artifact) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Release %s\n\nArchives:\n", tag)
	for _, a := range artifacts {
		fmt.Fprintf(&sb, "- %s (built by %s)\n", a.Name, a.Producer)
	}
	return sb.String()
}

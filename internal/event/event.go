package event

import (
	"fmt"
	"strings"
)

// Kind identifies the type of event that triggered a pipeline run.
type Kind int

const (
	// Push is a commit pushed to a branch.
	Push Kind = iota
	// PullRequest is a pull request opened against or updated on a branch.
	PullRequest
	// Tag is a version tag pushed to the repository.
	Tag
)

// String returns the canonical lowercase name of the kind, matching the
// names accepted by ParseKind and used in pipeline definition files.
func (k Kind) String() string {
	switch k {
	case Push:
		return "push"
	case PullRequest:
		return "pull_request"
	case Tag:
		return "tag"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseKind converts a trigger name into a Kind. It accepts the same names
// String produces.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "push":
		return Push, nil
	case "pull_request":
		return PullRequest, nil
	case "tag":
		return Tag, nil
	default:
		return 0, fmt.Errorf("unknown event kind: %q", s)
	}
}

const tagRefPrefix = "refs/tags/"

// Context captures the triggering event for a single pipeline run.
type Context struct {
	Kind Kind
	Ref  string
}

// FromTrigger builds a Context from the raw trigger payload. A pull request
// is signalled out of band by its event name; for every other event the ref
// decides: "refs/tags/<tag>" is a tag push, anything else is a branch push.
func FromTrigger(eventName, ref string) (Context, error) {
	if ref == "" {
		return Context{}, fmt.Errorf("trigger ref must not be empty")
	}
	if eventName == "pull_request" {
		return Context{Kind: PullRequest, Ref: ref}, nil
	}
	if strings.HasPrefix(ref, tagRefPrefix) {
		return Context{Kind: Tag, Ref: ref}, nil
	}
	return Context{Kind: Push, Ref: ref}, nil
}

// TagName returns the tag portion of the ref for a Tag event, stripping the
// "refs/tags/" prefix. For any other kind it returns an empty string.
func (c Context) TagName() string {
	if c.Kind != Tag {
		return ""
	}
	return strings.TrimPrefix(c.Ref, tagRefPrefix)
}

package app

import "errors"

// Config holds everything an App instance needs for one pipeline run.
type Config struct {
	// PipelinePath is a .hcl file or a directory of .hcl files.
	PipelinePath string

	// Event is the trigger event name ("push", "pull_request", "tag").
	Event string
	// Ref is the git ref the trigger carries.
	Ref string

	// ReleaseURL is the base URL of the release host. Required for runs
	// that may publish.
	ReleaseURL string
	// ReleaseToken is the bearer credential for the release host.
	ReleaseToken string

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Ref == "" {
		return nil, errors.New("Ref is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

package app

import "errors"

// Config holds everything an App instance needs to run one forward pass.
type Config struct {
	// ModelPath is an .hcl description file or a directory of them.
	ModelPath string
	// WeightsPath optionally points at a trained-parameter snapshot to
	// copy into the net before running.
	WeightsPath string
	// SavePath optionally writes the net's parameter snapshot after the
	// run, e.g. to re-serialize loaded weights.
	SavePath string

	// Phase, Stages, and Level override the description's default
	// execution state when set.
	Phase  string
	Stages []string
	Level  int

	LogFormat string
	LogLevel  string
	// Trace enables per-layer profiling scopes on the execution engine.
	Trace bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

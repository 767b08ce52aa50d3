package config

import "context"

// Loader is the interface for a format-specific description loader.
type Loader interface {
	// Load reads a network description from the given paths and translates
	// it into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*NetDescription, error)
}

package config

import "context"

// Loader is the interface for a format-specific sweep loader.
type Loader interface {
	// Load reads every sweep file found under the given paths and merges
	// them into a single Sweep.
	Load(ctx context.Context, paths ...string) (*Sweep, error)
}

// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Loaded is a loaded configuration together with where it came from.
	Loaded struct {
		Config *Config
		// Dir is the config directory that was searched.
		Dir string
		// FilePath is the file that was read; empty when only defaults and
		// environment applied.
		FilePath string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Loaded, error)
	}

	fileProvider struct {
		lookupEnv func(string) (string, bool)
	}
)

// NewProvider creates a provider that reads the config file and the
// process environment.
func NewProvider() Provider {
	return &fileProvider{lookupEnv: lookupEnv}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	return loadWithOptions(ctx, opts, p.lookupEnv)
}

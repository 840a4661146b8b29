// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package roster

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Source selects where the roster document comes from.
type Source string

const (
	// SourceOffline loads the bundled offline document.
	SourceOffline Source = "offline"
	// SourceRemote fetches the document from ConfigURL, falling back to the
	// offline document when the fetch fails.
	SourceRemote Source = "remote"
)

// Format selects how the roster document is parsed.
type Format string

const (
	// FormatCSV is the comma-separated tabular format.
	FormatCSV Format = "csv"
	// FormatJSON is recognized but not implemented; it loads an empty
	// roster with a warning.
	FormatJSON Format = "json"
)

// Config holds the roster service configuration.
type Config struct {
	// Source selects offline or remote acquisition.
	Source Source `yaml:"source"`

	// Format selects the document format.
	Format Format `yaml:"format"`

	// URL is the remote document location. Required for SourceRemote.
	URL string `yaml:"url"`

	// OfflineText is the bundled roster document.
	OfflineText string `yaml:"offline_text"`

	// OfflinePath optionally points at a roster document on disk. When set
	// it takes precedence over OfflineText.
	OfflinePath string `yaml:"offline_path"`

	// FetchTimeoutSeconds bounds the remote fetch. Zero means the default
	// of 60 seconds.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// DefaultConfig returns the configuration used when nothing is specified:
// offline CSV with an empty document.
func DefaultConfig() Config {
	return Config{
		Source:              SourceOffline,
		Format:              FormatCSV,
		FetchTimeoutSeconds: 60,
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	switch c.Source {
	case SourceOffline, SourceRemote:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}
	switch c.Format {
	case FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	if c.Source == SourceRemote && c.URL == "" {
		return fmt.Errorf("%w: remote source requires a url", ErrInvalidConfig)
	}
	return nil
}

func (c Config) fetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/panelhire/hiring-agent/internal/types"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Backends
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (optional persistence)

	// Evaluation defaults, applied when a request omits its own criteria
	Weights    map[string]float64 `json:"weights,omitempty"`
	Strictness string             `json:"strictness,omitempty"`

	// Execution
	TaskTimeoutSeconds int  `json:"task_timeout_seconds,omitempty"` // per-task deadline
	EventBuffer        int  `json:"event_buffer,omitempty"`         // event channel capacity
	Verbose            bool `json:"verbose,omitempty"`              // debug logging
	LogJSON            bool `json:"log_json,omitempty"`             // JSON log encoding
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.TaskTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'task_timeout_seconds' must be non-negative")
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("config error: 'event_buffer' must be non-negative")
	}
	for name, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("config error: weight %q must be non-negative", name)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Strictness == "" {
		result.Strictness = defaults.Strictness
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.TaskTimeoutSeconds == 0 {
		result.TaskTimeoutSeconds = defaults.TaskTimeoutSeconds
	}
	if result.EventBuffer == 0 {
		result.EventBuffer = defaults.EventBuffer
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Criteria converts the config's evaluation defaults into HiringCriteria,
// falling back to the built-in defaults for anything unset.
func (c *Config) Criteria() types.HiringCriteria {
	criteria := types.HiringCriteria{
		Weights:    c.Weights,
		Strictness: types.Strictness(c.Strictness),
	}
	return criteria.Normalize()
}

// TaskTimeout returns the per-task deadline, defaulting to 90 seconds.
func (c *Config) TaskTimeout() time.Duration {
	if c.TaskTimeoutSeconds > 0 {
		return time.Duration(c.TaskTimeoutSeconds) * time.Second
	}
	return 90 * time.Second
}

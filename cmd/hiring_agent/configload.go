package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/panelhire/hiring-agent/internal/config"
)

// flagOverrides carries the flag values a subcommand may layer on top of the
// config file. Only flags the user actually set are applied; flags a
// subcommand does not define are never considered changed.
type flagOverrides struct {
	dbURL   string
	apiKey  string
	verbose bool
	logJSON bool
}

// loadMergedConfig loads the optional config file and layers flag and
// environment values on top. Flags win over the file; the file wins over the
// environment. The layered result is validated before merging.
func loadMergedConfig(cmd *cobra.Command, path string, overrides flagOverrides) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = overrides.dbURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = overrides.apiKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = overrides.verbose
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = overrides.logJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})
	return &merged, nil
}

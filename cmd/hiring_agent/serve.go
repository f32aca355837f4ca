package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelhire/hiring-agent/internal/logger"
	"github.com/panelhire/hiring-agent/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveDBURL      string
	serveAPIKey     string
	serveVerbose    bool
	serveLogJSON    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the evaluation API server",
	Long:  `Start an HTTP server that accepts candidate submissions on POST /evaluate and streams evaluation events over SSE.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
	serveCmd.Flags().BoolVar(&serveLogJSON, "log-json", true, "Emit logs as JSON")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd, serveConfigPath, flagOverrides{
		dbURL:   serveDBURL,
		apiKey:  serveAPIKey,
		verbose: serveVerbose,
		logJSON: serveLogJSON,
	})
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("Gemini API key is required: set --api-key, GEMINI_API_KEY, or api_key in the config file")
	}

	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.New(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

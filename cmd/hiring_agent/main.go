// Package main provides the entry point for the hiring agent CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiring_agent",
	Short: "Multi-agent candidate evaluation engine",
	Long:  "Hiring Agent evaluates job candidates with a panel of LLM-backed scoring agents, a fairness audit, and a deterministic final verdict, streamed as real-time events.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

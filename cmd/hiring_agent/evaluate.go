package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelhire/hiring-agent/internal/agents"
	"github.com/panelhire/hiring-agent/internal/db"
	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/logger"
	"github.com/panelhire/hiring-agent/internal/pipeline"
	"github.com/panelhire/hiring-agent/internal/preprocess"
	"github.com/panelhire/hiring-agent/internal/types"
)

var (
	evalConfigPath    string
	evalCandidatePath string
	evalResumePath    string
	evalAPIKey        string
	evalDBURL         string
	evalStrictness    string
	evalVerbose       bool
	evalJSONOutput    bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one candidate from a JSON file",
	Long: `Run the full evaluation panel against a candidate submission and print
each event as it happens, ending with the final verdict.

The candidate file holds a JSON object with a "candidate" field and an
optional "criteria" field with custom weights and strictness.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evalConfigPath, "config", "", "Path to config.json file")
	evaluateCmd.Flags().StringVarP(&evalCandidatePath, "candidate", "c", "", "Path to candidate JSON file (required)")
	evaluateCmd.Flags().StringVar(&evalResumePath, "resume", "", "Path to a resume file (PDF or plain text) that replaces the candidate file's resume text")
	evaluateCmd.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	evaluateCmd.Flags().StringVar(&evalDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	evaluateCmd.Flags().StringVar(&evalStrictness, "strictness", "", "Override strictness: low, medium, or high")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Enable debug logging")
	evaluateCmd.Flags().BoolVar(&evalJSONOutput, "json", false, "Print events as JSON lines instead of text")
	_ = evaluateCmd.MarkFlagRequired("candidate")
	rootCmd.AddCommand(evaluateCmd)
}

// submission is the candidate file shape, mirroring the HTTP request body.
type submission struct {
	Candidate types.CandidateInput  `json:"candidate"`
	Criteria  *types.HiringCriteria `json:"criteria,omitempty"`
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	merged, err := loadMergedConfig(cmd, evalConfigPath, flagOverrides{
		dbURL:   evalDBURL,
		apiKey:  evalAPIKey,
		verbose: evalVerbose,
	})
	if err != nil {
		return err
	}

	if merged.APIKey == "" {
		return fmt.Errorf("Gemini API key is required: set --api-key, GEMINI_API_KEY, or api_key in the config file")
	}

	data, err := os.ReadFile(evalCandidatePath)
	if err != nil {
		return fmt.Errorf("failed to read candidate file: %w", err)
	}
	var sub submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return fmt.Errorf("failed to parse candidate file: %w", err)
	}
	if evalResumePath != "" {
		resume, err := loadResumeFile(evalResumePath)
		if err != nil {
			return err
		}
		sub.Candidate.Resume = resume
	}

	criteria := merged.Criteria()
	if sub.Criteria != nil {
		criteria = sub.Criteria.Normalize()
	}
	if evalStrictness != "" {
		criteria.Strictness = types.Strictness(evalStrictness)
		criteria = criteria.Normalize()
	}

	log, err := logger.New(false, merged.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), merged.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	var recorder pipeline.Recorder
	if merged.DatabaseURL != "" {
		database, err := db.Connect(ctx, merged.DatabaseURL)
		if err != nil {
			log.Warn("failed to connect to database, continuing without persistence")
		} else {
			defer database.Close()
			if err := database.EnsureSchema(ctx); err == nil {
				recorder = database
			}
		}
	}

	enricher := preprocess.NewEnricher(preprocess.NewGitHubClient(os.Getenv("GITHUB_TOKEN")), log)
	enricher.Enrich(ctx, &sub.Candidate)

	events, err := pipeline.Run(ctx, pipeline.Options{
		Input:       &sub.Candidate,
		Criteria:    criteria,
		Tasks:       agents.Panel(llmClient),
		Logger:      log,
		Recorder:    recorder,
		EventBuffer: merged.EventBuffer,
		TaskTimeout: merged.TaskTimeout(),
	})
	if err != nil {
		return err
	}

	failed := false
	for event := range events {
		if evalJSONOutput {
			line, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}
			fmt.Println(string(line))
		} else {
			printEvent(event)
		}
		if event.Kind == types.EventError {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("evaluation did not complete")
	}
	return nil
}

// loadResumeFile reads a resume from disk, extracting text from PDFs and
// taking anything else verbatim.
func loadResumeFile(path string) (types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to read resume file: %w", err)
	}
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := preprocess.ExtractPDFText(data)
		if err != nil {
			return types.Resume{}, err
		}
		return types.Resume{Text: text, FileName: name}, nil
	}
	return types.Resume{Text: string(data), FileName: name}, nil
}

func printEvent(event types.Event) {
	switch event.Kind {
	case types.EventVerdict:
		fmt.Printf("\n=== %s ===\n", event.Message)
		if event.FullVerdict != nil {
			v := event.FullVerdict
			fmt.Printf("Reasoning: %s\n", v.DecisionReasoning)
			if len(v.KeyStrengths) > 0 {
				fmt.Printf("Strengths: %v\n", v.KeyStrengths)
			}
			if len(v.KeyConcerns) > 0 {
				fmt.Printf("Concerns:  %v\n", v.KeyConcerns)
			}
			fmt.Printf("Next steps: %s\n", v.NextSteps)
		}
	default:
		fmt.Printf("[%s] %s\n", event.Source, event.Message)
	}
}

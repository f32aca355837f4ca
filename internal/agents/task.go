// Package agents implements the seven scoring tasks of the evaluation panel.
// Each agent is an opaque unit of work behind the ScoringTask interface: it
// reads the shared candidate input (and, for later layers, prior results),
// asks its LLM backend for a structured analysis, and always returns exactly
// one well-formed TaskResult. An agent never lets a failure escape its own
// boundary; backend errors, cancellation, and malformed output all become the
// agent's neutral fallback payload with a recorded failure.
package agents

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/schemas"
	"github.com/panelhire/hiring-agent/internal/types"
)

// ScoringTask is the capability every panel member implements. Execute must
// be total: it returns a TaskResult in every case, including cancellation.
type ScoringTask interface {
	// Name returns the task's graph node name.
	Name() string
	// Execute runs the task. input and criteria are read-only; prior exposes
	// only results whose owning tasks completed before this one started.
	Execute(ctx context.Context, input *types.CandidateInput, criteria types.HiringCriteria, prior types.ResultView) *types.TaskResult
}

// Panel returns the full seven-agent panel in canonical order, all sharing
// one LLM client.
func Panel(client llm.Client) []ScoringTask {
	return []ScoringTask{
		NewResumeAnalyst(client),
		NewCoverLetterExpert(client),
		NewJDMatchManager(client),
		NewGitHubAnalyst(client),
		NewLocationCoordinator(client),
		NewFairnessAuditor(client),
		NewReferee(client),
	}
}

// generateInto asks the LLM for JSON, checks it against the named schema, and
// unmarshals it into out. A nil return means out is populated; otherwise the
// returned failure explains which contract was broken.
func generateInto(ctx context.Context, client llm.Client, tier llm.ModelTier, prompt, schemaName string, out any) *types.TaskFailure {
	raw, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		kind := types.FailureBackend
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			kind = types.FailureCancelled
		}
		return &types.TaskFailure{Kind: kind, Message: err.Error()}
	}

	if err := schemas.Validate(schemaName, []byte(raw)); err != nil {
		return &types.TaskFailure{Kind: types.FailureMalformed, Message: err.Error()}
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &types.TaskFailure{Kind: types.FailureMalformed, Message: "failed to parse JSON response: " + err.Error()}
	}

	return nil
}

package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/prompts"
	"github.com/panelhire/hiring-agent/internal/types"
)

// FairnessAuditor is the Layer-2 agent. It reviews the five analyst scores
// together with the candidate's protected attributes and proposes bounded
// per-source adjustments when it detects bias.
type FairnessAuditor struct {
	client llm.Client
}

// NewFairnessAuditor creates the fairness auditor.
func NewFairnessAuditor(client llm.Client) *FairnessAuditor {
	return &FairnessAuditor{client: client}
}

// Name implements ScoringTask.
func (a *FairnessAuditor) Name() string { return types.TaskFairnessAudit }

// Execute implements ScoringTask.
func (a *FairnessAuditor) Execute(ctx context.Context, input *types.CandidateInput, _ types.HiringCriteria, prior types.ResultView) *types.TaskResult {
	prompt := prompts.Format(prompts.MustGet("agents.json", "fairness_audit"), map[string]string{
		"CandidateName":     input.PersonalInfo.Name,
		"CandidateLocation": fmt.Sprintf("%s, %s", input.PersonalInfo.Location.City, input.PersonalInfo.Location.Country),
		"Gender":            orNotProvided(input.PersonalInfo.Gender),
		"Age":               orNotProvided(input.PersonalInfo.Age),
		"ScoresSummary":     scoresSummary(prior),
		"AllScores":         allScoresJSON(prior),
	})

	var audit types.FairnessAudit
	if failure := generateInto(ctx, a.client, llm.TierAnalyst, prompt, "fairness_audit", &audit); failure != nil {
		return &types.TaskResult{
			Task:    a.Name(),
			Payload: fallbackFairnessAudit(),
			Failure: failure,
		}
	}

	return &types.TaskResult{Task: a.Name(), Payload: audit}
}

// fallbackFairnessAudit reports no bias and zero adjustments, which leaves
// the aggregated score untouched.
func fallbackFairnessAudit() types.FairnessAudit {
	adjustments := make(map[string]float64, len(types.AnalystSources))
	for _, source := range types.AnalystSources {
		adjustments[source] = 0
	}
	return types.FairnessAudit{
		BiasDetected:     false,
		ScoreAdjustments: adjustments,
		TotalAdjustment:  0,
		Concerns:         []string{"Fairness audit unavailable"},
		ThoughtProcess:   "The fairness audit could not be completed, so I applied no adjustments.",
	}
}

func orNotProvided(value string) string {
	if value == "" {
		return "Not provided"
	}
	return value
}

// scoresSummary renders one "source: score" line per analyst, flagging
// fallback results so the auditor does not mistake a neutral score for a
// genuine low one.
func scoresSummary(prior types.ResultView) string {
	var b strings.Builder
	for _, source := range types.AnalystSources {
		result, ok := prior.Result(source)
		if !ok {
			fmt.Fprintf(&b, "- %s: no result\n", source)
			continue
		}
		scored, ok := result.Payload.(types.Scored)
		if !ok {
			fmt.Fprintf(&b, "- %s: no result\n", source)
			continue
		}
		if result.Failed() {
			fmt.Fprintf(&b, "- %s: %.1f (fallback, analysis failed)\n", source, scored.ScoreValue())
			continue
		}
		fmt.Fprintf(&b, "- %s: %.1f\n", source, scored.ScoreValue())
	}
	return strings.TrimRight(b.String(), "\n")
}

// allScoresJSON serializes the full analyst payloads keyed by source.
func allScoresJSON(prior types.ResultView) string {
	payloads := make(map[string]any, len(types.AnalystSources))
	for _, source := range types.AnalystSources {
		if result, ok := prior.Result(source); ok {
			payloads[source] = result.Payload
		}
	}
	data, err := json.MarshalIndent(payloads, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

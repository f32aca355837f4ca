package agents

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/prompts"
	"github.com/panelhire/hiring-agent/internal/scoring"
	"github.com/panelhire/hiring-agent/internal/types"
)

// Referee is the Layer-3 decision agent. The final score and verdict label
// come from the scoring arithmetic, which is authoritative; the LLM only
// writes the decision narrative around the computed numbers. If the narrative
// generation fails, the run still ends with a complete Verdict built from the
// arithmetic alone.
type Referee struct {
	client llm.Client
}

// NewReferee creates the final decision agent.
func NewReferee(client llm.Client) *Referee {
	return &Referee{client: client}
}

// Name implements ScoringTask.
func (a *Referee) Name() string { return types.TaskFinalVerdict }

// Execute implements ScoringTask.
func (a *Referee) Execute(ctx context.Context, input *types.CandidateInput, criteria types.HiringCriteria, prior types.ResultView) *types.TaskResult {
	audit, auditConcern := auditFrom(prior)
	computed := scoring.Aggregate(prior, criteria, audit)
	if auditConcern != "" {
		computed.Concerns = append(computed.Concerns, auditConcern)
	}

	prompt := prompts.Format(prompts.MustGet("agents.json", "final_verdict"), map[string]string{
		"CandidateName":      input.PersonalInfo.Name,
		"Role":               input.JobDescription.Role,
		"CompanyName":        input.JobDescription.CompanyName,
		"WeightsSummary":     weightsSummary(computed.NormalizedWeights),
		"Strictness":         string(criteria.Strictness),
		"FinalScore":         strconv.FormatFloat(computed.FinalScore, 'f', 2, 64),
		"Verdict":            string(computed.Verdict),
		"FairnessAdjustment": strconv.FormatFloat(computed.TotalAdjustment, 'f', 2, 64),
		"BiasDetected":       strconv.FormatBool(audit.BiasDetected),
		"FairnessDetails":    fairnessDetails(audit),
	})

	var narrative verdictNarrative
	if failure := generateInto(ctx, a.client, llm.TierReferee, prompt, "verdict_narrative", &narrative); failure != nil {
		return &types.TaskResult{
			Task:    a.Name(),
			Payload: computed.FallbackVerdict(failure.Message),
			Failure: failure,
		}
	}

	verdict := &types.Verdict{
		FinalScore:                computed.FinalScore,
		Verdict:                   computed.Verdict,
		WeightedScores:            computed.WeightedScores,
		FairnessAdjustmentApplied: computed.TotalAdjustment,
		DecisionReasoning:         narrative.DecisionReasoning,
		KeyStrengths:              narrative.KeyStrengths,
		KeyConcerns:               append(narrative.KeyConcerns, computed.Concerns...),
		NextSteps:                 narrative.NextSteps,
		ThoughtProcess:            narrative.ThoughtProcess,
	}

	return &types.TaskResult{Task: a.Name(), Payload: verdict}
}

// verdictNarrative is the referee's LLM output: prose only, no numbers.
type verdictNarrative struct {
	DecisionReasoning string   `json:"decision_reasoning"`
	KeyStrengths      []string `json:"key_strengths"`
	KeyConcerns       []string `json:"key_concerns"`
	NextSteps         string   `json:"next_steps"`
	ThoughtProcess    string   `json:"thought_process"`
}

// auditFrom reads the fairness audit from the run state. A missing or
// malformed slot degrades to the neutral audit so the arithmetic still runs.
func auditFrom(prior types.ResultView) (types.FairnessAudit, string) {
	result, ok := prior.Result(types.TaskFairnessAudit)
	if !ok {
		return fallbackFairnessAudit(), "fairness audit result missing; no adjustment applied"
	}
	audit, ok := result.Payload.(types.FairnessAudit)
	if !ok {
		return fallbackFairnessAudit(), "fairness audit payload unreadable; no adjustment applied"
	}
	return audit, ""
}

func weightsSummary(weights map[string]float64) string {
	var b strings.Builder
	for _, source := range types.AnalystSources {
		fmt.Fprintf(&b, "- %s: %.0f%%\n", source, weights[source]*100)
	}
	return strings.TrimRight(b.String(), "\n")
}

func fairnessDetails(audit types.FairnessAudit) string {
	if !audit.BiasDetected && len(audit.Concerns) == 0 {
		return "No bias detected."
	}
	parts := make([]string, 0, len(audit.BiasTypesFound)+len(audit.Concerns))
	parts = append(parts, audit.BiasTypesFound...)
	parts = append(parts, audit.Concerns...)
	return strings.Join(parts, "; ")
}

package agents

import (
	"context"
	"strconv"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/prompts"
	"github.com/panelhire/hiring-agent/internal/types"
)

// LocationCoordinator evaluates logistics fit between the candidate's
// location and the job's location requirements.
type LocationCoordinator struct {
	client llm.Client
}

// NewLocationCoordinator creates the location coordinator.
func NewLocationCoordinator(client llm.Client) *LocationCoordinator {
	return &LocationCoordinator{client: client}
}

// Name implements ScoringTask.
func (a *LocationCoordinator) Name() string { return types.SourceLocation }

// Execute implements ScoringTask.
func (a *LocationCoordinator) Execute(ctx context.Context, input *types.CandidateInput, _ types.HiringCriteria, _ types.ResultView) *types.TaskResult {
	jd := input.JobDescription
	prompt := prompts.Format(prompts.MustGet("agents.json", "location"), map[string]string{
		"ApplicantCity":     input.PersonalInfo.Location.City,
		"ApplicantCountry":  input.PersonalInfo.Location.Country,
		"WillingToRelocate": strconv.FormatBool(input.PersonalInfo.WillingToRelocate),
		"JobLocationType":   jd.LocationType,
		"JobCity":           jd.Location.City,
		"JobCountry":        jd.Location.Country,
	})

	var score types.LocationScore
	if failure := generateInto(ctx, a.client, llm.TierAnalyst, prompt, "location_score", &score); failure != nil {
		return &types.TaskResult{
			Task:    a.Name(),
			Payload: fallbackLocationScore(),
			Failure: failure,
		}
	}

	return &types.TaskResult{Task: a.Name(), Payload: score}
}

// fallbackLocationScore is neutral at 50 rather than 0: an unknown location
// fit should not sink an otherwise strong candidate.
func fallbackLocationScore() types.LocationScore {
	return types.LocationScore{
		Score:          50,
		LocationMatch:  "Unknown",
		Feasibility:    "Unknown",
		RiskFactors:    []string{"Location analysis unavailable"},
		ThoughtProcess: "The location analysis could not be completed, so I recorded a neutral midpoint score.",
	}
}

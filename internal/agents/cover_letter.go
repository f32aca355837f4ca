package agents

import (
	"context"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/prompts"
	"github.com/panelhire/hiring-agent/internal/types"
)

// CoverLetterExpert scores the cover letter for clarity, motivation, and
// specificity.
type CoverLetterExpert struct {
	client llm.Client
}

// NewCoverLetterExpert creates the cover letter expert.
func NewCoverLetterExpert(client llm.Client) *CoverLetterExpert {
	return &CoverLetterExpert{client: client}
}

// Name implements ScoringTask.
func (a *CoverLetterExpert) Name() string { return types.SourceCoverLetter }

// Execute implements ScoringTask.
func (a *CoverLetterExpert) Execute(ctx context.Context, input *types.CandidateInput, _ types.HiringCriteria, _ types.ResultView) *types.TaskResult {
	prompt := prompts.Format(prompts.MustGet("agents.json", "cover_letter"), map[string]string{
		"CoverLetterText": input.CoverLetter.Text,
		"CompanyName":     input.JobDescription.CompanyName,
		"Role":            input.JobDescription.Role,
	})

	var score types.CoverLetterScore
	if failure := generateInto(ctx, a.client, llm.TierAnalyst, prompt, "cover_letter_score", &score); failure != nil {
		return &types.TaskResult{
			Task:    a.Name(),
			Payload: fallbackCoverLetterScore(),
			Failure: failure,
		}
	}

	return &types.TaskResult{Task: a.Name(), Payload: score}
}

func fallbackCoverLetterScore() types.CoverLetterScore {
	return types.CoverLetterScore{
		Score:           0,
		MotivationLevel: "Unknown",
		RedFlags:        []string{"Cover letter analysis unavailable"},
		ThoughtProcess:  "The cover letter analysis could not be completed, so I recorded a neutral zero score.",
	}
}

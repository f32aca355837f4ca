package agents

import (
	"context"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/prompts"
	"github.com/panelhire/hiring-agent/internal/types"
)

// ResumeAnalyst scores resume quality and seniority fit against the job
// description.
type ResumeAnalyst struct {
	client llm.Client
}

// NewResumeAnalyst creates the resume analyst.
func NewResumeAnalyst(client llm.Client) *ResumeAnalyst {
	return &ResumeAnalyst{client: client}
}

// Name implements ScoringTask.
func (a *ResumeAnalyst) Name() string { return types.SourceResume }

// Execute implements ScoringTask.
func (a *ResumeAnalyst) Execute(ctx context.Context, input *types.CandidateInput, _ types.HiringCriteria, _ types.ResultView) *types.TaskResult {
	prompt := prompts.Format(prompts.MustGet("agents.json", "resume"), map[string]string{
		"ResumeText": input.Resume.Text,
		"JDText":     input.JobDescription.Description,
		"Seniority":  input.JobDescription.SeniorityLevel,
	})

	var score types.ResumeScore
	if failure := generateInto(ctx, a.client, llm.TierAnalyst, prompt, "resume_score", &score); failure != nil {
		return &types.TaskResult{
			Task:    a.Name(),
			Payload: fallbackResumeScore(),
			Failure: failure,
		}
	}

	return &types.TaskResult{Task: a.Name(), Payload: score}
}

func fallbackResumeScore() types.ResumeScore {
	return types.ResumeScore{
		Score:          0,
		Weaknesses:     []string{"Resume analysis unavailable"},
		SeniorityFit:   "Unknown",
		ThoughtProcess: "The resume analysis could not be completed, so I recorded a neutral zero score.",
	}
}

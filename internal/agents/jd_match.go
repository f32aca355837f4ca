package agents

import (
	"context"
	"strings"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/prompts"
	"github.com/panelhire/hiring-agent/internal/types"
)

// JDMatchManager performs a skill-by-skill comparison between the resume and
// the job description's required skills.
type JDMatchManager struct {
	client llm.Client
}

// NewJDMatchManager creates the JD match manager.
func NewJDMatchManager(client llm.Client) *JDMatchManager {
	return &JDMatchManager{client: client}
}

// Name implements ScoringTask.
func (a *JDMatchManager) Name() string { return types.SourceJDMatch }

// Execute implements ScoringTask.
func (a *JDMatchManager) Execute(ctx context.Context, input *types.CandidateInput, _ types.HiringCriteria, _ types.ResultView) *types.TaskResult {
	jd := input.JobDescription
	prompt := prompts.Format(prompts.MustGet("agents.json", "jd_match"), map[string]string{
		"ResumeText":       input.Resume.Text,
		"RequiredSkills":   strings.Join(jd.SkillsRequired, ", "),
		"NiceToHaveSkills": strings.Join(jd.SkillsNiceToHave, ", "),
		"JDText":           jd.Description,
	})

	var score types.JDMatchScore
	if failure := generateInto(ctx, a.client, llm.TierAnalyst, prompt, "jd_match_score", &score); failure != nil {
		return &types.TaskResult{
			Task:    a.Name(),
			Payload: fallbackJDMatchScore(jd.SkillsRequired),
			Failure: failure,
		}
	}

	return &types.TaskResult{Task: a.Name(), Payload: score}
}

func fallbackJDMatchScore(required []string) types.JDMatchScore {
	return types.JDMatchScore{
		Score:          0,
		MissingSkills:  required,
		ThoughtProcess: "The skill comparison could not be completed, so I recorded a neutral zero score.",
	}
}

package agents

import (
	"context"
	"encoding/json"
	"time"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/prompts"
	"github.com/panelhire/hiring-agent/internal/types"
)

// GitHubAnalyst assesses the candidate's public repository portfolio.
type GitHubAnalyst struct {
	client llm.Client
	now    func() time.Time
}

// NewGitHubAnalyst creates the GitHub analyst.
func NewGitHubAnalyst(client llm.Client) *GitHubAnalyst {
	return &GitHubAnalyst{client: client, now: time.Now}
}

// Name implements ScoringTask.
func (a *GitHubAnalyst) Name() string { return types.SourceGitHub }

// Execute implements ScoringTask.
func (a *GitHubAnalyst) Execute(ctx context.Context, input *types.CandidateInput, _ types.HiringCriteria, _ types.ResultView) *types.TaskResult {
	reposJSON, err := json.MarshalIndent(input.GitHub.RepoList, "", "  ")
	if err != nil {
		reposJSON = []byte("[]")
	}

	prompt := prompts.Format(prompts.MustGet("agents.json", "github"), map[string]string{
		"Username":  input.GitHub.Username,
		"ReposJSON": string(reposJSON),
		"Today":     a.now().Format("2006-01-02"),
	})

	var score types.GitHubScore
	if failure := generateInto(ctx, a.client, llm.TierAnalyst, prompt, "github_score", &score); failure != nil {
		return &types.TaskResult{
			Task:    a.Name(),
			Payload: fallbackGitHubScore(len(input.GitHub.RepoList)),
			Failure: failure,
		}
	}

	return &types.TaskResult{Task: a.Name(), Payload: score}
}

func fallbackGitHubScore(totalRepos int) types.GitHubScore {
	return types.GitHubScore{
		Score:             0,
		TotalRepos:        totalRepos,
		RecentActivity:    "Unknown",
		PortfolioStrength: "Unknown",
		RedFlags:          []string{"GitHub analysis unavailable"},
		ThoughtProcess:    "The GitHub portfolio analysis could not be completed, so I recorded a neutral zero score.",
	}
}

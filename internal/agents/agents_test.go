package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/types"
)

// stubClient returns a canned response (or error) and records prompts.
type stubClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }
func (s *stubClient) Close() error                  { return nil }

// resultMap is a trivial ResultView for feeding prior results to agents.
type resultMap map[string]*types.TaskResult

func (m resultMap) Result(task string) (*types.TaskResult, bool) {
	r, ok := m[task]
	return r, ok
}

func sampleInput() *types.CandidateInput {
	return &types.CandidateInput{
		PersonalInfo: types.PersonalInfo{
			Name:              "Jordan Reyes",
			Location:          types.Location{City: "Lisbon", Country: "Portugal"},
			WillingToRelocate: true,
		},
		Resume:      types.Resume{Text: "Six years building Go services at scale."},
		CoverLetter: types.CoverLetter{Text: "I have followed Acme's platform work closely."},
		GitHub: types.GitHubProfile{
			Username: "jordanr",
			RepoList: []types.Repo{{Name: "kvstore", Language: "Go", Stars: 120, LastUpdated: "2026-07-01"}},
		},
		JobDescription: types.JobDescription{
			Description:    "Backend engineer for distributed systems.",
			Role:           "Backend Engineer",
			CompanyName:    "Acme",
			SeniorityLevel: "Senior",
			LocationType:   "Remote",
			SkillsRequired: []string{"Go", "PostgreSQL"},
		},
	}
}

func analystResults() resultMap {
	return resultMap{
		types.SourceResume:      {Task: types.SourceResume, Payload: types.ResumeScore{Score: 80}},
		types.SourceCoverLetter: {Task: types.SourceCoverLetter, Payload: types.CoverLetterScore{Score: 70}},
		types.SourceJDMatch:     {Task: types.SourceJDMatch, Payload: types.JDMatchScore{Score: 90}},
		types.SourceGitHub:      {Task: types.SourceGitHub, Payload: types.GitHubScore{Score: 60}},
		types.SourceLocation:    {Task: types.SourceLocation, Payload: types.LocationScore{Score: 100}},
	}
}

func TestPanelOrderAndNames(t *testing.T) {
	panel := Panel(&stubClient{})
	require.Len(t, panel, 7)

	names := make([]string, 0, len(panel))
	for _, task := range panel {
		names = append(names, task.Name())
	}
	assert.Equal(t, []string{
		types.SourceResume,
		types.SourceCoverLetter,
		types.SourceJDMatch,
		types.SourceGitHub,
		types.SourceLocation,
		types.TaskFairnessAudit,
		types.TaskFinalVerdict,
	}, names)
}

func TestResumeAnalystSuccess(t *testing.T) {
	client := &stubClient{response: `{
		"score": 82, "strengths": ["Go depth"], "weaknesses": [],
		"seniority_fit": "Senior", "experience_years": 6,
		"thought_process": "I analyzed the resume and found strong Go experience."
	}`}
	analyst := NewResumeAnalyst(client)

	result := analyst.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), resultMap{})

	require.False(t, result.Failed())
	assert.Equal(t, types.SourceResume, result.Task)

	score, ok := result.Payload.(types.ResumeScore)
	require.True(t, ok)
	assert.Equal(t, 82.0, score.Score)
	assert.Equal(t, "Senior", score.SeniorityFit)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Six years building Go services")
	assert.NotContains(t, client.prompts[0], "{{.")
	assert.Equal(t, llm.TierAnalyst, client.tiers[0])
}

func TestResumeAnalystBackendFailure(t *testing.T) {
	analyst := NewResumeAnalyst(&stubClient{err: errors.New("upstream 503")})

	result := analyst.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), resultMap{})

	require.True(t, result.Failed())
	assert.Equal(t, types.FailureBackend, result.Failure.Kind)

	score, ok := result.Payload.(types.ResumeScore)
	require.True(t, ok)
	assert.Equal(t, 0.0, score.Score)
}

func TestResumeAnalystCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyst := NewResumeAnalyst(&stubClient{response: "{}"})
	result := analyst.Execute(ctx, sampleInput(), types.DefaultCriteria(), resultMap{})

	require.True(t, result.Failed())
	assert.Equal(t, types.FailureCancelled, result.Failure.Kind)
}

func TestResumeAnalystMalformedOutput(t *testing.T) {
	cases := map[string]string{
		"not json":           "the model apologized instead",
		"missing score":      `{"thought_process": "no score"}`,
		"out of range score": `{"score": 140, "thought_process": "too high"}`,
	}
	for name, response := range cases {
		t.Run(name, func(t *testing.T) {
			analyst := NewResumeAnalyst(&stubClient{response: response})
			result := analyst.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), resultMap{})

			require.True(t, result.Failed())
			assert.Equal(t, types.FailureMalformed, result.Failure.Kind)

			score, ok := result.Payload.(types.ResumeScore)
			require.True(t, ok)
			assert.Equal(t, 0.0, score.Score)
		})
	}
}

func TestLocationCoordinatorFallbackIsMidpoint(t *testing.T) {
	coordinator := NewLocationCoordinator(&stubClient{err: errors.New("timeout")})

	result := coordinator.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), resultMap{})

	require.True(t, result.Failed())
	score, ok := result.Payload.(types.LocationScore)
	require.True(t, ok)
	assert.Equal(t, 50.0, score.Score)
}

func TestCoverLetterExpertSuccess(t *testing.T) {
	client := &stubClient{response: `{
		"score": 74, "clarity_rating": 8, "motivation_level": "High",
		"company_mention_specificity": "Highly Specific",
		"red_flags": [], "strengths": ["Names the platform team"],
		"thought_process": "I noticed the applicant specifically mentioned Acme."
	}`}
	expert := NewCoverLetterExpert(client)

	result := expert.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), resultMap{})

	require.False(t, result.Failed())
	score, ok := result.Payload.(types.CoverLetterScore)
	require.True(t, ok)
	assert.Equal(t, 74.0, score.Score)
	assert.Contains(t, client.prompts[0], "Acme")
}

func TestJDMatchFallbackReportsRequiredSkillsMissing(t *testing.T) {
	manager := NewJDMatchManager(&stubClient{err: errors.New("unreachable")})

	result := manager.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), resultMap{})

	require.True(t, result.Failed())
	score, ok := result.Payload.(types.JDMatchScore)
	require.True(t, ok)
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, score.MissingSkills)
}

func TestGitHubAnalystPromptIncludesRepos(t *testing.T) {
	client := &stubClient{response: `{
		"score": 65, "total_repos": 1, "high_quality_repos": ["kvstore"],
		"recent_activity": "Very active", "language_diversity": ["Go"],
		"portfolio_strength": "Moderate", "red_flags": [],
		"thought_process": "I reviewed the repositories."
	}`}
	analyst := NewGitHubAnalyst(client)

	result := analyst.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), resultMap{})

	require.False(t, result.Failed())
	assert.Contains(t, client.prompts[0], "kvstore")
	assert.Contains(t, client.prompts[0], "jordanr")
}

func TestFairnessAuditorSuccess(t *testing.T) {
	client := &stubClient{response: `{
		"bias_detected": true,
		"bias_types_found": ["location bias"],
		"score_adjustments": {"resume": 0, "cover_letter": 0, "jd_match": 0, "github": 0, "location": 5},
		"total_adjustment": 5,
		"concerns": ["Location weighted for a remote role"],
		"recommendations": ["Reduce location weight for remote roles"],
		"thought_process": "I compared scores against the remote requirement."
	}`}
	auditor := NewFairnessAuditor(client)

	result := auditor.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), analystResults())

	require.False(t, result.Failed())
	audit, ok := result.Payload.(types.FairnessAudit)
	require.True(t, ok)
	assert.True(t, audit.BiasDetected)
	assert.Equal(t, 5.0, audit.TotalAdjustment)

	// The prompt carries every analyst score for the auditor to inspect.
	for _, fragment := range []string{"resume: 80.0", "cover_letter: 70.0", "jd_match: 90.0", "github: 60.0", "location: 100.0"} {
		assert.Contains(t, client.prompts[0], fragment)
	}
}

func TestFairnessAuditorFallbackIsNeutral(t *testing.T) {
	auditor := NewFairnessAuditor(&stubClient{err: errors.New("quota exceeded")})

	result := auditor.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), analystResults())

	require.True(t, result.Failed())
	audit, ok := result.Payload.(types.FairnessAudit)
	require.True(t, ok)
	assert.False(t, audit.BiasDetected)
	assert.Zero(t, audit.TotalAdjustment)
	for _, source := range types.AnalystSources {
		adjustment, present := audit.ScoreAdjustments[source]
		assert.True(t, present)
		assert.Zero(t, adjustment)
	}
}

func TestRefereeComputedNumbersAreAuthoritative(t *testing.T) {
	client := &stubClient{response: `{
		"decision_reasoning": "Strong skills coverage drives the decision.",
		"key_strengths": ["JD match", "Location fit"],
		"key_concerns": [],
		"next_steps": "Schedule a systems design interview.",
		"thought_process": "I weighed the skill match most heavily."
	}`}
	referee := NewReferee(client)

	prior := analystResults()
	prior[types.TaskFairnessAudit] = &types.TaskResult{
		Task:    types.TaskFairnessAudit,
		Payload: types.FairnessAudit{TotalAdjustment: -5},
	}

	result := referee.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), prior)

	require.False(t, result.Failed())
	verdict, ok := result.Payload.(*types.Verdict)
	require.True(t, ok)

	// 80*.2 + 70*.15 + 90*.3 + 60*.2 + 100*.15 = 80.5, minus the 5-point audit.
	assert.InDelta(t, 75.5, verdict.FinalScore, 1e-9)
	assert.Equal(t, types.VerdictShortlisted, verdict.Verdict)
	assert.Equal(t, -5.0, verdict.FairnessAdjustmentApplied)
	assert.Equal(t, "Strong skills coverage drives the decision.", verdict.DecisionReasoning)
	assert.Equal(t, llm.TierReferee, client.tiers[0])
}

func TestRefereeNarrativeFailureStillProducesVerdict(t *testing.T) {
	referee := NewReferee(&stubClient{err: errors.New("model overloaded")})

	prior := analystResults()
	prior[types.TaskFairnessAudit] = &types.TaskResult{
		Task:    types.TaskFairnessAudit,
		Payload: types.FairnessAudit{TotalAdjustment: 0},
	}

	result := referee.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), prior)

	require.True(t, result.Failed())
	verdict, ok := result.Payload.(*types.Verdict)
	require.True(t, ok)
	assert.InDelta(t, 80.5, verdict.FinalScore, 1e-9)
	assert.Equal(t, types.VerdictMaybe, verdict.Verdict)
	assert.NotEmpty(t, verdict.DecisionReasoning)
}

func TestRefereeToleratesMissingAudit(t *testing.T) {
	client := &stubClient{response: `{
		"decision_reasoning": "Decided without an audit on file.",
		"key_strengths": [], "key_concerns": [],
		"next_steps": "Proceed with caution.",
		"thought_process": "No fairness audit was available."
	}`}
	referee := NewReferee(client)

	result := referee.Execute(context.Background(), sampleInput(), types.DefaultCriteria(), analystResults())

	require.False(t, result.Failed())
	verdict, ok := result.Payload.(*types.Verdict)
	require.True(t, ok)
	assert.InDelta(t, 80.5, verdict.FinalScore, 1e-9)
	assert.Zero(t, verdict.FairnessAdjustmentApplied)
	assert.Contains(t, strings.Join(verdict.KeyConcerns, " "), "fairness audit result missing")
}

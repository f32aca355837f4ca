//nolint:revive // types is a standard Go package name pattern
package types

// FailureKind classifies why a task fell back to its neutral result.
type FailureKind string

// Failure kinds recorded on fallback TaskResults.
const (
	FailureBackend   FailureKind = "backend_error"   // transport/inference call failed
	FailureMalformed FailureKind = "malformed_output" // backend returned unparseable or invalid JSON
	FailureCancelled FailureKind = "cancelled"        // run deadline or caller cancellation
)

// TaskFailure records why a task produced its fallback payload instead of a
// real analysis. A TaskResult with a nil Failure is a genuine result.
type TaskFailure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// TaskResult is the single structured outcome every task produces: a typed
// score payload, plus an optional failure record when the payload is the
// task's neutral fallback. Every task produces exactly one TaskResult.
type TaskResult struct {
	Task    string       `json:"task"`
	Payload any          `json:"payload"`
	Failure *TaskFailure `json:"failure,omitempty"`
}

// Failed reports whether this result is a fallback.
func (r *TaskResult) Failed() bool {
	return r.Failure != nil
}

// Scored is implemented by the five Layer-1 payloads so the scheduler and
// aggregator can read a numeric score without knowing the concrete type.
type Scored interface {
	ScoreValue() float64
}

// ResultView is a read-only view over recorded task results. The scheduler
// guarantees that a task only ever sees slots whose owning tasks completed
// before it started.
type ResultView interface {
	// Result returns the recorded result for a task, if present.
	Result(task string) (*TaskResult, bool)
}

// ResumeScore is the resume analyst's payload.
type ResumeScore struct {
	Score           float64  `json:"score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	SeniorityFit    string   `json:"seniority_fit"`
	ExperienceYears float64  `json:"experience_years"`
	ThoughtProcess  string   `json:"thought_process"`
}

// ScoreValue implements Scored.
func (s ResumeScore) ScoreValue() float64 { return s.Score }

// CoverLetterScore is the cover letter expert's payload.
type CoverLetterScore struct {
	Score                     float64  `json:"score"`
	ClarityRating             float64  `json:"clarity_rating"`
	MotivationLevel           string   `json:"motivation_level"`
	CompanyMentionSpecificity string   `json:"company_mention_specificity"`
	RedFlags                  []string `json:"red_flags"`
	Strengths                 []string `json:"strengths"`
	ThoughtProcess            string   `json:"thought_process"`
}

// ScoreValue implements Scored.
func (s CoverLetterScore) ScoreValue() float64 { return s.Score }

// JDMatchScore is the JD match manager's payload.
type JDMatchScore struct {
	Score          float64  `json:"score"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	BonusSkills    []string `json:"bonus_skills,omitempty"`
	MatchRatio     string   `json:"match_ratio,omitempty"`
	ThoughtProcess string   `json:"thought_process"`
}

// ScoreValue implements Scored.
func (s JDMatchScore) ScoreValue() float64 { return s.Score }

// GitHubScore is the GitHub analyst's payload.
type GitHubScore struct {
	Score             float64  `json:"score"`
	TotalRepos        int      `json:"total_repos"`
	HighQualityRepos  []string `json:"high_quality_repos"`
	RecentActivity    string   `json:"recent_activity"`
	LanguageDiversity []string `json:"language_diversity"`
	PortfolioStrength string   `json:"portfolio_strength"`
	RedFlags          []string `json:"red_flags"`
	ThoughtProcess    string   `json:"thought_process"`
}

// ScoreValue implements Scored.
func (s GitHubScore) ScoreValue() float64 { return s.Score }

// LocationScore is the location coordinator's payload.
type LocationScore struct {
	Score                 float64  `json:"score"`
	LocationMatch         string   `json:"location_match"`
	Feasibility           string   `json:"feasibility"`
	RelocationRequired    bool     `json:"relocation_required"`
	VisaSponsorshipNeeded bool     `json:"visa_sponsorship_needed"`
	CommuteFeasibility    string   `json:"commute_feasibility"`
	RiskFactors           []string `json:"risk_factors"`
	ThoughtProcess        string   `json:"thought_process"`
}

// ScoreValue implements Scored.
func (s LocationScore) ScoreValue() float64 { return s.Score }

// FairnessAudit is the Layer-2 auditor's payload. Adjustments are bounded to
// [-10, 10] per source by the audit task's own contract.
type FairnessAudit struct {
	BiasDetected     bool               `json:"bias_detected"`
	BiasTypesFound   []string           `json:"bias_types_found"`
	ScoreAdjustments map[string]float64 `json:"score_adjustments"`
	TotalAdjustment  float64            `json:"total_adjustment"`
	Concerns         []string           `json:"concerns"`
	Recommendations  []string           `json:"recommendations"`
	ThoughtProcess   string             `json:"thought_process"`
}

//nolint:revive // types is a standard Go package name pattern
package types

// VerdictLabel is the terminal decision for a run.
type VerdictLabel string

// Verdict labels.
const (
	VerdictShortlisted VerdictLabel = "SHORTLISTED"
	VerdictMaybe       VerdictLabel = "MAYBE"
	VerdictRejected    VerdictLabel = "REJECTED"
)

// WeightedScores reports each source's contribution after weight
// normalization: score_i * normalized_weight_i.
type WeightedScores struct {
	Resume      float64 `json:"resume_weighted"`
	CoverLetter float64 `json:"cover_letter_weighted"`
	JDMatch     float64 `json:"jd_match_weighted"`
	GitHub      float64 `json:"github_weighted"`
	Location    float64 `json:"location_weighted"`
}

// Verdict is the Layer-3 payload and the terminal output of a run. Produced
// exactly once per run and never mutated afterwards.
type Verdict struct {
	FinalScore                float64        `json:"final_score"`
	Verdict                   VerdictLabel   `json:"verdict"`
	WeightedScores            WeightedScores `json:"weighted_scores"`
	FairnessAdjustmentApplied float64        `json:"fairness_adjustment_applied"`
	DecisionReasoning         string         `json:"decision_reasoning"`
	KeyStrengths              []string       `json:"key_strengths"`
	KeyConcerns               []string       `json:"key_concerns"`
	NextSteps                 string         `json:"next_steps"`
	ThoughtProcess            string         `json:"thought_process"`
}

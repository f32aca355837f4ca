// Package scoring implements the deterministic decision arithmetic: weight
// normalization, per-source weighted scores, the fairness adjustment, and
// strictness thresholding. Everything here is a pure function of its inputs;
// the LLM contributes narrative only, never numbers.
package scoring

import (
	"fmt"

	"github.com/panelhire/hiring-agent/internal/types"
)

// Thresholds holds the score boundaries for one strictness level. A final
// score strictly above Shortlist is SHORTLISTED; strictly below Reject is
// REJECTED; everything in between, bounds included, is MAYBE.
type Thresholds struct {
	Shortlist float64
	Reject    float64
}

// ThresholdsFor returns the threshold profile for a strictness level.
// Unrecognized levels use the medium profile.
func ThresholdsFor(strictness types.Strictness) Thresholds {
	switch strictness {
	case types.StrictnessHigh:
		return Thresholds{Shortlist: 85, Reject: 70}
	case types.StrictnessLow:
		return Thresholds{Shortlist: 60, Reject: 45}
	default:
		return Thresholds{Shortlist: 75, Reject: 60}
	}
}

// VerdictFor is the pure thresholding function: verdict is monotonically
// non-decreasing in finalScore for a fixed strictness.
func VerdictFor(finalScore float64, strictness types.Strictness) types.VerdictLabel {
	t := ThresholdsFor(strictness)
	switch {
	case finalScore > t.Shortlist:
		return types.VerdictShortlisted
	case finalScore < t.Reject:
		return types.VerdictRejected
	default:
		return types.VerdictMaybe
	}
}

// NormalizeWeights divides each weight by the total so normalized weights sum
// to 1. When the total is zero (or negative, which only happens with bad
// input), every normalized weight is zero: a degenerate but defined case, not
// an error.
func NormalizeWeights(weights map[string]float64) map[string]float64 {
	total := 0.0
	for _, source := range types.AnalystSources {
		total += weights[source]
	}

	normalized := make(map[string]float64, len(types.AnalystSources))
	for _, source := range types.AnalystSources {
		if total > 0 {
			normalized[source] = weights[source] / total
		} else {
			normalized[source] = 0
		}
	}
	return normalized
}

// ClampScore forces a raw score into [0, 100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CollectScores reads the five Layer-1 results from the run state and returns
// their clamped numeric scores. A missing slot, a payload without a numeric
// score, or an out-of-range value becomes 0 with a recorded concern.
func CollectScores(results types.ResultView) (map[string]float64, []string) {
	scores := make(map[string]float64, len(types.AnalystSources))
	var concerns []string

	for _, source := range types.AnalystSources {
		result, ok := results.Result(source)
		if !ok {
			scores[source] = 0
			concerns = append(concerns, fmt.Sprintf("no result recorded for %s; scored as 0", source))
			continue
		}

		scored, ok := result.Payload.(types.Scored)
		if !ok {
			scores[source] = 0
			concerns = append(concerns, fmt.Sprintf("%s produced no numeric score; scored as 0", source))
			continue
		}

		raw := scored.ScoreValue()
		clamped := ClampScore(raw)
		if clamped != raw {
			concerns = append(concerns, fmt.Sprintf("%s reported out-of-range score %.2f; clamped to %.0f", source, raw, clamped))
		}
		scores[source] = clamped
	}

	return scores, concerns
}

// Result holds the aggregation outcome for one run.
type Result struct {
	NormalizedWeights map[string]float64
	WeightedScores    types.WeightedScores
	PreFairnessScore  float64
	TotalAdjustment   float64
	FinalScore        float64
	Verdict           types.VerdictLabel
	Concerns          []string
}

// Aggregate runs the full decision arithmetic: normalize weights, weight the
// five source scores, add the audit's total adjustment, and threshold by
// strictness. The audit's raw adjustment is recorded without re-clamping; the
// audit task's own contract bounds each per-source adjustment to [-10, 10].
func Aggregate(results types.ResultView, criteria types.HiringCriteria, audit types.FairnessAudit) Result {
	scores, concerns := CollectScores(results)
	weights := NormalizeWeights(criteria.Weights)

	weighted := types.WeightedScores{
		Resume:      scores[types.SourceResume] * weights[types.SourceResume],
		CoverLetter: scores[types.SourceCoverLetter] * weights[types.SourceCoverLetter],
		JDMatch:     scores[types.SourceJDMatch] * weights[types.SourceJDMatch],
		GitHub:      scores[types.SourceGitHub] * weights[types.SourceGitHub],
		Location:    scores[types.SourceLocation] * weights[types.SourceLocation],
	}

	preFairness := weighted.Resume + weighted.CoverLetter + weighted.JDMatch +
		weighted.GitHub + weighted.Location

	return Result{
		NormalizedWeights: weights,
		WeightedScores:    weighted,
		PreFairnessScore:  preFairness,
		TotalAdjustment:   audit.TotalAdjustment,
		FinalScore:        preFairness + audit.TotalAdjustment,
		Verdict:           VerdictFor(preFairness+audit.TotalAdjustment, criteria.Strictness),
		Concerns:          concerns,
	}
}

// FallbackVerdict builds a usable Verdict from the computed arithmetic when
// the decision task cannot produce a full one. The run must never terminate
// without a Verdict.
func (r Result) FallbackVerdict(concern string) *types.Verdict {
	concerns := append([]string{}, r.Concerns...)
	if concern != "" {
		concerns = append(concerns, concern)
	}
	return &types.Verdict{
		FinalScore:                r.FinalScore,
		Verdict:                   types.VerdictMaybe,
		WeightedScores:            r.WeightedScores,
		FairnessAdjustmentApplied: r.TotalAdjustment,
		DecisionReasoning:         "Unable to produce full reasoning; verdict derived from computed scores only.",
		KeyStrengths:              []string{},
		KeyConcerns:               concerns,
		NextSteps:                 "Review the recorded concerns and rerun the analysis.",
		ThoughtProcess: fmt.Sprintf(
			"I could not generate the full decision narrative. The weighted score before fairness adjustment is %.2f and the adjusted final score is %.2f.",
			r.PreFairnessScore, r.FinalScore),
	}
}

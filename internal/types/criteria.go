//nolint:revive // types is a standard Go package name pattern
package types

// Strictness selects the threshold profile used to convert a final score
// into a verdict label.
type Strictness string

// Strictness levels, from most lenient to most demanding.
const (
	StrictnessLow    Strictness = "low"
	StrictnessMedium Strictness = "medium"
	StrictnessHigh   Strictness = "high"
)

// Weight source names. These are the five Layer-1 task names and double as
// keys in HiringCriteria.Weights.
const (
	SourceResume      = "resume"
	SourceCoverLetter = "cover_letter"
	SourceJDMatch     = "jd_match"
	SourceGitHub      = "github"
	SourceLocation    = "location"
)

// TaskFairnessAudit and TaskFinalVerdict are the Layer-2 and Layer-3 task names.
const (
	TaskFairnessAudit = "fairness_audit"
	TaskFinalVerdict  = "final_verdict"
)

// AnalystSources lists the five Layer-1 sources in their canonical order.
// The order is used for reporting only; completion order is unspecified.
var AnalystSources = []string{
	SourceResume,
	SourceCoverLetter,
	SourceJDMatch,
	SourceGitHub,
	SourceLocation,
}

// HiringCriteria holds the per-source weights and the strictness level for a
// run. Weights may be on any non-negative scale; the aggregator normalizes.
// Supplied once at request start and immutable for the run.
type HiringCriteria struct {
	Weights    map[string]float64 `json:"weights" validate:"dive,gte=0"`
	Strictness Strictness         `json:"strictness"`
}

// DefaultCriteria returns the weights and strictness used when a request does
// not supply its own.
func DefaultCriteria() HiringCriteria {
	return HiringCriteria{
		Weights: map[string]float64{
			SourceResume:      0.2,
			SourceCoverLetter: 0.15,
			SourceJDMatch:     0.3,
			SourceGitHub:      0.2,
			SourceLocation:    0.15,
		},
		Strictness: StrictnessMedium,
	}
}

// Normalize fills missing weights from the defaults and coerces an
// unrecognized strictness to medium. It returns a copy; the receiver is not
// modified.
func (c HiringCriteria) Normalize() HiringCriteria {
	out := HiringCriteria{
		Weights:    make(map[string]float64, len(AnalystSources)),
		Strictness: c.Strictness,
	}

	defaults := DefaultCriteria()
	for _, source := range AnalystSources {
		if w, ok := c.Weights[source]; ok && w >= 0 {
			out.Weights[source] = w
		} else {
			out.Weights[source] = defaults.Weights[source]
		}
	}

	switch c.Strictness {
	case StrictnessLow, StrictnessMedium, StrictnessHigh:
	default:
		out.Strictness = StrictnessMedium
	}

	return out
}

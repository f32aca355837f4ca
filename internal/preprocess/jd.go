package preprocess

import (
	"context"
	"strings"

	"github.com/panelhire/hiring-agent/internal/fetch"
	"github.com/panelhire/hiring-agent/internal/types"
)

// FetchPostingText retrieves a job posting page and extracts its readable
// text using job-board-aware selectors.
func FetchPostingText(ctx context.Context, postingURL string) (string, error) {
	result, err := fetch.URL(ctx, postingURL, nil)
	if err != nil {
		return "", err
	}
	return fetch.ExtractMainText(result.Body, fetch.JobPostingSelectors())
}

// EnrichJobDescription fills in location type and seniority when the
// submitter left them blank, using keyword heuristics over the posting text.
// Explicitly provided values are never overwritten.
func EnrichJobDescription(jd *types.JobDescription) {
	if jd.LocationType == "" {
		jd.LocationType = InferLocationType(jd.Description)
	}
	if jd.SeniorityLevel == "" {
		jd.SeniorityLevel = InferSeniority(jd.Description, jd.Role)
	}
}

// InferLocationType guesses the working arrangement from posting text.
// Defaults to On-site, the conservative reading for location scoring.
func InferLocationType(description string) string {
	text := strings.ToLower(description)
	switch {
	case strings.Contains(text, "fully remote"), strings.Contains(text, "remote-first"),
		strings.Contains(text, "100% remote"), strings.Contains(text, "work from anywhere"):
		return "Remote"
	case strings.Contains(text, "hybrid"):
		return "Hybrid"
	case strings.Contains(text, "remote"):
		return "Remote"
	case strings.Contains(text, "on-site"), strings.Contains(text, "onsite"), strings.Contains(text, "in office"), strings.Contains(text, "in-office"):
		return "On-site"
	default:
		return "On-site"
	}
}

// InferSeniority guesses the seniority level from the role title first, then
// the posting text.
func InferSeniority(description, role string) string {
	for _, text := range []string{strings.ToLower(role), strings.ToLower(description)} {
		switch {
		case strings.Contains(text, "principal"), strings.Contains(text, "staff"):
			return "Executive"
		case strings.Contains(text, "senior"), strings.Contains(text, "lead"), strings.Contains(text, "sr."):
			return "Senior"
		case strings.Contains(text, "junior"), strings.Contains(text, "entry level"), strings.Contains(text, "entry-level"),
			strings.Contains(text, "intern"), strings.Contains(text, "graduate"):
			return "Junior"
		case strings.Contains(text, "mid-level"), strings.Contains(text, "mid level"):
			return "Mid-Level"
		}
	}
	return "Mid-Level"
}

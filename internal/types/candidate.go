// Package types provides type definitions for structured data used throughout the hiring-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Location is a city/country pair used for both candidates and jobs.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// PersonalInfo holds candidate-supplied personal data, including protected
// attributes that only the fairness auditor is allowed to reason about.
type PersonalInfo struct {
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	Location          Location `json:"location"`
	GitHubURL         string   `json:"github_url,omitempty"`
	WillingToRelocate bool     `json:"willing_to_relocate"`
	Gender            string   `json:"gender,omitempty"`
	Age               string   `json:"age,omitempty"`
}

// Resume is the extracted resume text plus source metadata.
type Resume struct {
	Text     string `json:"text"`
	FileName string `json:"file_name,omitempty"`
}

// CoverLetter is the cover letter text.
type CoverLetter struct {
	Text string `json:"text"`
}

// Repo describes a single public repository on a candidate's profile.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	LastUpdated string `json:"last_updated"`
	URL         string `json:"url"`
}

// GitHubProfile holds the candidate's GitHub identity and repository list.
type GitHubProfile struct {
	Username string `json:"username"`
	URL      string `json:"url,omitempty"`
	RepoList []Repo `json:"repo_list"`
}

// JobDescription is the structured job posting the candidate applied to.
// Description may be empty on input when PostingURL is set; preprocessing
// fills it from the fetched page.
type JobDescription struct {
	Description      string   `json:"description"`
	PostingURL       string   `json:"posting_url,omitempty"`
	Role             string   `json:"role"`
	CompanyName      string   `json:"company_name"`
	SeniorityLevel   string   `json:"seniority_level,omitempty"`
	LocationType     string   `json:"location_type,omitempty"` // Remote, On-site, Hybrid
	Location         Location `json:"location"`
	SkillsRequired   []string `json:"skills_required,omitempty"`
	SkillsNiceToHave []string `json:"skills_nice_to_have,omitempty"`
}

// CandidateInput is the immutable payload every scoring task reads.
// It is constructed once per evaluation run and never mutated afterwards;
// tasks share it by pointer and must treat it as read-only.
type CandidateInput struct {
	PersonalInfo   PersonalInfo   `json:"personal_info" validate:"required"`
	Resume         Resume         `json:"resume" validate:"required"`
	CoverLetter    CoverLetter    `json:"cover_letter"`
	GitHub         GitHubProfile  `json:"github"`
	JobDescription JobDescription `json:"job_description" validate:"required"`
}

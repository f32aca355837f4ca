// Package preprocess enriches raw candidate submissions before scoring:
// it resolves GitHub profiles through the REST API, pulls job posting text
// from URLs, and fills in job description fields the submitter left blank.
package preprocess

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/panelhire/hiring-agent/internal/fetch"
	"github.com/panelhire/hiring-agent/internal/types"
)

// DefaultGitHubAPI is the public GitHub REST API base URL.
const DefaultGitHubAPI = "https://api.github.com"

// maxRepos caps how many repositories we hand to the portfolio analyst.
const maxRepos = 30

// GitHubClient fetches public repository data for a candidate.
type GitHubClient struct {
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
	// Token is an optional personal access token for higher rate limits.
	Token string
}

// NewGitHubClient creates a client against the public API.
func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{BaseURL: DefaultGitHubAPI, Token: token}
}

// ExtractUsername pulls the account name out of a GitHub profile URL.
// Bare usernames are accepted as-is.
func ExtractUsername(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty GitHub reference")
	}
	if !strings.Contains(trimmed, "/") && !strings.Contains(trimmed, ".") {
		return trimmed, nil
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid GitHub URL %q: %w", raw, err)
	}
	if !strings.HasSuffix(parsed.Hostname(), "github.com") {
		return "", fmt.Errorf("not a GitHub URL: %q", raw)
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", fmt.Errorf("no username in GitHub URL %q", raw)
	}
	return parts[0], nil
}

// repoResponse mirrors the fields we read from the GitHub repos endpoint.
type repoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	UpdatedAt   string `json:"updated_at"`
	HTMLURL     string `json:"html_url"`
	Fork        bool   `json:"fork"`
}

// FetchProfile resolves a profile URL or username into a populated
// GitHubProfile with repositories sorted by stars, most-starred first.
func (c *GitHubClient) FetchProfile(ctx context.Context, reference string) (*types.GitHubProfile, error) {
	username, err := ExtractUsername(reference)
	if err != nil {
		return nil, err
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultGitHubAPI
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", base, url.PathEscape(username), maxRepos)

	opts := fetch.DefaultOptions()
	opts.Headers = map[string]string{"Accept": "application/vnd.github+json"}
	if c.Token != "" {
		opts.Headers["Authorization"] = "Bearer " + c.Token
	}

	var repos []repoResponse
	if err := fetch.JSON(ctx, endpoint, opts, &repos); err != nil {
		return nil, fmt.Errorf("fetching repositories for %s: %w", username, err)
	}

	profile := &types.GitHubProfile{
		Username: username,
		URL:      "https://github.com/" + username,
		RepoList: make([]types.Repo, 0, len(repos)),
	}
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		profile.RepoList = append(profile.RepoList, types.Repo{
			Name:        repo.Name,
			Description: repo.Description,
			Language:    repo.Language,
			Stars:       repo.Stars,
			LastUpdated: repo.UpdatedAt,
			URL:         repo.HTMLURL,
		})
	}

	sort.SliceStable(profile.RepoList, func(i, j int) bool {
		return profile.RepoList[i].Stars > profile.RepoList[j].Stars
	})

	return profile, nil
}

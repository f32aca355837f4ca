package preprocess

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/panelhire/hiring-agent/internal/types"
)

// Enricher resolves the external pieces of a candidate submission.
type Enricher struct {
	github *GitHubClient
	log    *zap.Logger
}

// NewEnricher creates an enricher. logger may be nil.
func NewEnricher(github *GitHubClient, log *zap.Logger) *Enricher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Enricher{github: github, log: log}
}

// Enrich fills in the parts of the input that reference external resources:
// the GitHub repository list and the job posting text. The two fetches run
// concurrently. Enrichment is best-effort; a failed fetch logs a warning and
// leaves the field as submitted, since every scoring task degrades cleanly
// on missing data.
func (e *Enricher) Enrich(ctx context.Context, input *types.CandidateInput) {
	g, gCtx := errgroup.WithContext(ctx)

	if e.github != nil && input.PersonalInfo.GitHubURL != "" && len(input.GitHub.RepoList) == 0 {
		g.Go(func() error {
			profile, err := e.github.FetchProfile(gCtx, input.PersonalInfo.GitHubURL)
			if err != nil {
				e.log.Warn("github enrichment failed, scoring with submitted data",
					zap.String("github_url", input.PersonalInfo.GitHubURL), zap.Error(err))
				return nil
			}
			input.GitHub = *profile
			return nil
		})
	}

	if input.JobDescription.Description == "" && input.JobDescription.PostingURL != "" {
		g.Go(func() error {
			text, err := FetchPostingText(gCtx, input.JobDescription.PostingURL)
			if err != nil {
				e.log.Warn("job posting fetch failed, scoring with submitted data",
					zap.String("posting_url", input.JobDescription.PostingURL), zap.Error(err))
				return nil
			}
			input.JobDescription.Description = text
			return nil
		})
	}

	// Goroutines swallow their errors above, so Wait only synchronizes.
	_ = g.Wait()

	EnrichJobDescription(&input.JobDescription)
	if input.GitHub.Username == "" && input.PersonalInfo.GitHubURL != "" {
		if username, err := ExtractUsername(input.PersonalInfo.GitHubURL); err == nil {
			input.GitHub.Username = username
		}
	}
}

package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/gitpublisher/internal/config"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(token, owner, repo string) (GithubRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return newGithubRepositoryWithClient(tc, owner, repo), nil
}

func newGithubRepositoryWithClient(httpClient *http.Client, owner, repo string) *githubRepository {
	return &githubRepository{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}
}

// CreateCommitStatus sets a status on the given commit.
func (r *githubRepository) CreateCommitStatus(
	ctx context.Context,
	sha string,
	state CommitState,
	statusContext, description string,
) error {
	status := &github.RepoStatus{
		State:       github.Ptr(string(state)),
		Context:     github.Ptr(statusContext),
		Description: github.Ptr(description),
	}
	_, _, err := r.client.Repositories.CreateStatus(ctx, r.owner, r.repo, sha, status)
	if err != nil {
		return fmt.Errorf("failed to create commit status on %s: %w", sha, err)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/repository"
)

// ReportCommitStatusUseCase mirrors a build result onto the tagged commit.
type ReportCommitStatusUseCase struct {
	GithubRepo repository.GithubRepository
	Context    string
}

// Execute sets a commit status on sha describing the tag.
func (uc *ReportCommitStatusUseCase) Execute(ctx context.Context, sha string, result domain.Result, tagName string) error {
	if sha == "" {
		return fmt.Errorf("commit sha cannot be empty")
	}
	statusCtx := uc.Context
	if statusCtx == "" {
		statusCtx = "gitpublisher"
	}
	description := fmt.Sprintf("Tagged %s", tagName)
	return uc.GithubRepo.CreateCommitStatus(ctx, sha, CommitStateFor(result), statusCtx, description)
}

// CommitStateFor maps a build result to a GitHub commit state.
func CommitStateFor(result domain.Result) repository.CommitState {
	switch {
	case result.IsBetterOrEqualTo(domain.ResultSuccess):
		return repository.CommitStateSuccess
	case result == domain.ResultAborted || result == domain.ResultNotBuilt:
		return repository.CommitStateError
	default:
		return repository.CommitStateFailure
	}
}

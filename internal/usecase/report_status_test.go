package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCommitStatusUseCase_Execute(t *testing.T) {
	t.Run("Should set a success status for successful builds", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		uc := &ReportCommitStatusUseCase{GithubRepo: ghRepo, Context: "ci/tag"}
		ctx := context.Background()
		ghRepo.On("CreateCommitStatus", ctx, "abc", repository.CommitStateSuccess, "ci/tag",
			"Tagged hudson-widgets-1-SUCCESS").Return(nil)
		require.NoError(t, uc.Execute(ctx, "abc", domain.ResultSuccess, "hudson-widgets-1-SUCCESS"))
		ghRepo.AssertExpectations(t)
	})
	t.Run("Should default the status context", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		uc := &ReportCommitStatusUseCase{GithubRepo: ghRepo}
		ctx := context.Background()
		ghRepo.On("CreateCommitStatus", ctx, "abc", repository.CommitStateFailure, "gitpublisher",
			"Tagged t").Return(errors.New("forbidden"))
		err := uc.Execute(ctx, "abc", domain.ResultFailure, "t")
		assert.ErrorContains(t, err, "forbidden")
	})
	t.Run("Should reject an empty sha", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		uc := &ReportCommitStatusUseCase{GithubRepo: ghRepo}
		assert.Error(t, uc.Execute(context.Background(), "", domain.ResultSuccess, "t"))
		ghRepo.AssertNotCalled(t, "CreateCommitStatus")
	})
}

func TestCommitStateFor(t *testing.T) {
	assert.Equal(t, repository.CommitStateSuccess, CommitStateFor(domain.ResultSuccess))
	assert.Equal(t, repository.CommitStateFailure, CommitStateFor(domain.ResultUnstable))
	assert.Equal(t, repository.CommitStateFailure, CommitStateFor(domain.ResultFailure))
	assert.Equal(t, repository.CommitStateError, CommitStateFor(domain.ResultAborted))
	assert.Equal(t, repository.CommitStateError, CommitStateFor(domain.ResultNotBuilt))
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushMergeUseCase_Execute(t *testing.T) {
	merge := domain.MergeConfiguration{
		Enabled:      true,
		RemoteName:   "upstream",
		RemoteURL:    "https://example.com/acme/widgets.git",
		TargetBranch: "integration",
	}
	t.Run("Should push HEAD to the target branch", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &PushMergeUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		remote := domain.Remote{Name: "upstream", URL: "https://example.com/acme/widgets.git"}
		gitRepo.On("Push", ctx, remote, "HEAD:integration").Return(nil).Once()
		require.NoError(t, uc.Execute(ctx, merge))
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should require a target branch", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &PushMergeUseCase{GitRepo: gitRepo}
		err := uc.Execute(context.Background(), domain.MergeConfiguration{Enabled: true, RemoteName: "origin"})
		require.Error(t, err)
		gitRepo.AssertNotCalled(t, "Push")
	})
	t.Run("Should wrap push errors", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &PushMergeUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("Push", ctx, merge.Remote(), "HEAD:integration").Return(errors.New("non-fast-forward"))
		err := uc.Execute(ctx, merge)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to push to integration")
		assert.Contains(t, err.Error(), "non-fast-forward")
	})
}

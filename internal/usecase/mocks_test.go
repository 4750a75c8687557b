package usecase

import (
	"context"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) DeleteTag(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}

func (m *mockGitRepository) Push(ctx context.Context, remote domain.Remote, refSpec string) error {
	args := m.Called(ctx, remote, refSpec)
	return args.Error(0)
}

func (m *mockGitRepository) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Mock for GithubRepository
type mockGithubRepository struct {
	mock.Mock
}

func (m *mockGithubRepository) CreateCommitStatus(
	ctx context.Context,
	sha string,
	state repository.CommitState,
	statusContext, description string,
) error {
	args := m.Called(ctx, sha, state, statusContext, description)
	return args.Error(0)
}

package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/host"
	"github.com/compozy/gitpublisher/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Mock implementations for testing

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

type mockRecordRepository struct {
	mock.Mock
}

func (m *mockRecordRepository) Save(ctx context.Context, record *domain.PublishRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRecordRepository) Load(ctx context.Context, id string) (*domain.PublishRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublishRecord), args.Error(1)
}

func (m *mockRecordRepository) LoadLatest(ctx context.Context) (*domain.PublishRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublishRecord), args.Error(1)
}

func (m *mockRecordRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRecordRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockMetricsService struct {
	mock.Mock
}

func (m *mockMetricsService) ObservePublish(
	outcome domain.PublishOutcome,
	result domain.Result,
	pushed bool,
	d time.Duration,
) {
	m.Called(outcome, result, pushed, d)
}

func (m *mockMetricsService) Push(ctx context.Context, grouping map[string]string) error {
	args := m.Called(ctx, grouping)
	return args.Error(0)
}

// fakeWorkspace runs fn in place, counting calls.
type fakeWorkspace struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (w *fakeWorkspace) Act(ctx context.Context, workspace string, fn host.WorkspaceFunc) error {
	w.mu.Lock()
	w.calls++
	w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	return fn(ctx, workspace)
}

// failingEnvironment always fails to resolve.
type failingEnvironment struct {
	err error
}

func (f failingEnvironment) Resolve(_ context.Context) (map[string]string, error) {
	return nil, f.err
}

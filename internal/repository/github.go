package repository

import "context"

// CommitState is the state of a commit status on GitHub.
type CommitState string

const (
	CommitStatePending CommitState = "pending"
	CommitStateSuccess CommitState = "success"
	CommitStateFailure CommitState = "failure"
	CommitStateError   CommitState = "error"
)

// GithubRepository defines the interface for GitHub API operations.

type GithubRepository interface {
	CreateCommitStatus(ctx context.Context, sha string, state CommitState, statusContext, description string) error
}

package repository

import (
	"context"

	"github.com/compozy/gitpublisher/internal/domain"
)

// GitRepository defines the git operations used to publish a build result.

type GitRepository interface {
	// DeleteTag removes a local tag. A missing tag is not an error.
	DeleteTag(ctx context.Context, name string) error
	CreateTag(ctx context.Context, tag, msg string) error
	// Push sends refSpec ("<src>:<dst>") to the remote. A src of HEAD is
	// resolved against the current checkout.
	Push(ctx context.Context, remote domain.Remote, refSpec string) error
	HeadCommit(ctx context.Context) (string, error)
}

// GitOpener opens the repository found in a workspace.
type GitOpener func(workspace string, opts GitOptions) (GitRepository, error)

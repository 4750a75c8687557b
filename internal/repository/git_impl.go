package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// gitRepository is the go-git implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
	opts GitOptions
}

// NewGitRepository opens the repository containing workspace.
func NewGitRepository(workspace string, opts GitOptions) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(workspace, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", workspace, err)
	}
	return &gitRepository{repo: repo, opts: opts}, nil
}

// DeleteTag deletes a tag, ignoring tags that do not exist.
func (r *gitRepository) DeleteTag(_ context.Context, name string) error {
	err := r.repo.DeleteTag(name)
	if err == nil || errors.Is(err, git.ErrTagNotFound) {
		return nil
	}
	return fmt.Errorf("failed to delete tag %s: %w", name, err)
}

// CreateTag creates an annotated tag on HEAD.
func (r *gitRepository) CreateTag(_ context.Context, tag, msg string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	_, err = r.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Message: msg,
		Tagger: &object.Signature{
			Name:  r.opts.TaggerName,
			Email: r.opts.TaggerEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// Push pushes refSpec to the remote. When the remote carries a URL an
// anonymous remote is used, so the workspace need not have it configured.
func (r *gitRepository) Push(ctx context.Context, remote domain.Remote, refSpec string) error {
	spec, err := r.resolveRefSpec(refSpec)
	if err != nil {
		return err
	}
	name := remote.Name
	if name == "" {
		name = git.DefaultRemoteName
	}
	opts := &git.PushOptions{
		RemoteName: name,
		RefSpecs:   []config.RefSpec{spec},
	}
	if r.opts.Auth != nil {
		opts.Auth = r.opts.Auth
	}
	if remote.URL != "" {
		anon := git.NewRemote(r.repo.Storer, &config.RemoteConfig{Name: name, URLs: []string{remote.URL}})
		err = anon.PushContext(ctx, opts)
	} else {
		err = r.repo.PushContext(ctx, opts)
	}
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push %s to %s: %w", spec, name, err)
	}
	return nil
}

// HeadCommit returns the SHA of the current HEAD commit.
func (r *gitRepository) HeadCommit(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// resolveRefSpec turns "HEAD:<branch>" into a fully qualified ref-spec. A
// detached HEAD is pushed by commit hash.
func (r *gitRepository) resolveRefSpec(refSpec string) (config.RefSpec, error) {
	src, dst, ok := strings.Cut(refSpec, ":")
	if !ok || dst == "" {
		return "", fmt.Errorf("invalid ref-spec %q: expected <src>:<dst>", refSpec)
	}
	if src == "" || src == plumbing.HEAD.String() {
		head, err := r.repo.Head()
		if err != nil {
			return "", fmt.Errorf("failed to get HEAD: %w", err)
		}
		if head.Name().IsBranch() {
			src = head.Name().String()
		} else {
			src = head.Hash().String()
		}
	}
	if !strings.HasPrefix(dst, "refs/") {
		dst = plumbing.NewBranchReferenceName(dst).String()
	}
	spec := config.RefSpec(src + ":" + dst)
	if err := spec.Validate(); err != nil {
		return "", fmt.Errorf("invalid ref-spec %q: %w", spec, err)
	}
	return spec, nil
}

package host

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// WorkspaceFunc runs against a workspace directory.
type WorkspaceFunc func(ctx context.Context, dir string) error

// WorkspaceRunner executes work against a build workspace, wherever it lives.
type WorkspaceRunner interface {
	Act(ctx context.Context, workspace string, fn WorkspaceFunc) error
}

// LocalWorkspace runs work in-process against a workspace on fs.
type LocalWorkspace struct {
	fs afero.Fs
}

// NewLocalWorkspace creates a runner for workspaces on the local filesystem.
func NewLocalWorkspace(fs afero.Fs) *LocalWorkspace {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &LocalWorkspace{fs: fs}
}

// Act checks that workspace is a directory and runs fn in it. A panic in fn
// is returned as an error.
func (w *LocalWorkspace) Act(ctx context.Context, workspace string, fn WorkspaceFunc) (err error) {
	dir, err := filepath.Abs(workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace %s: %w", workspace, err)
	}
	isDir, err := afero.DirExists(w.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to stat workspace %s: %w", dir, err)
	}
	if !isDir {
		return fmt.Errorf("workspace %s does not exist", dir)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workspace operation panicked: %v", r)
		}
	}()
	return fn(ctx, dir)
}

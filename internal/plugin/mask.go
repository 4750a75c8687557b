package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var errStopWalk = errors.New("stop walk")

// checkFileMask validates mask against the files below workspace on fs.
// Patterns use '/' separators and '**' for any number of directories.
func checkFileMask(ctx context.Context, fs afero.Fs, workspace, mask string) FormValidation {
	patterns := splitMask(mask)
	if len(patterns) == 0 {
		return ok()
	}
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return validationError(fmt.Sprintf("Invalid file mask pattern '%s': %v", p, err))
		}
	}
	exists, err := afero.DirExists(fs, workspace)
	if err != nil || !exists {
		return warning(fmt.Sprintf("Workspace %s is not available, the mask cannot be checked", workspace))
	}
	for _, p := range patterns {
		matched, err := anyFileMatches(ctx, fs, workspace, p)
		if err != nil {
			return validationError(fmt.Sprintf("Failed to scan workspace: %v", err))
		}
		if !matched {
			return warning(fmt.Sprintf("'%s' doesn't match anything", p))
		}
	}
	return ok()
}

func splitMask(mask string) []string {
	var patterns []string
	for _, p := range strings.Split(mask, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, filepath.ToSlash(p))
		}
	}
	return patterns
}

func anyFileMatches(ctx context.Context, fs afero.Fs, root, pattern string) (bool, error) {
	matched := false
	err := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() && rel == ".git" {
			return filepath.SkipDir
		}
		if matchSegments(splitPath(pattern), splitPath(rel)) {
			matched = true
			return errStopWalk
		}
		return nil
	})
	if errors.Is(err, errStopWalk) {
		return true, nil
	}
	return matched, err
}

// matchSegments matches path segments, letting "**" consume zero or more of them.
func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			for i := 0; i <= len(name); i++ {
				if matchSegments(pattern[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if matched, _ := path.Match(pattern[0], name[0]); !matched {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}

func splitPath(p string) []string {
	return strings.Split(p, "/")
}

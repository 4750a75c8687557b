package orchestrator

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// ValidateTagName checks a tag name against git's ref naming rules.
func ValidateTagName(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if err := plumbing.NewTagReferenceName(tag).Validate(); err != nil {
		return fmt.Errorf("invalid tag name %q: %w", tag, err)
	}
	return nil
}

// ValidateBranchName checks a branch name against git's ref naming rules.
func ValidateBranchName(branch string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if err := plumbing.NewBranchReferenceName(branch).Validate(); err != nil {
		return fmt.Errorf("invalid branch name %q: %w", branch, err)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/repository"
)

// PushMergeUseCase pushes HEAD to the merge target branch.
type PushMergeUseCase struct {
	GitRepo repository.GitRepository
	Steps   StepRecorder
}

// Execute pushes HEAD:<target> to the configured remote.
func (uc *PushMergeUseCase) Execute(ctx context.Context, merge domain.MergeConfiguration) error {
	if merge.TargetBranch == "" {
		return fmt.Errorf("merge target branch is not configured")
	}
	err := uc.GitRepo.Push(ctx, merge.Remote(), merge.RefSpec())
	recordStep(uc.Steps, domain.StepTypePush, merge.RefSpec(), err)
	if err != nil {
		return fmt.Errorf("failed to push to %s: %w", merge.TargetBranch, err)
	}
	return nil
}

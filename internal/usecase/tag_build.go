package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/repository"
)

// TagBuildUseCase replaces the base build tag with one carrying the result.
type TagBuildUseCase struct {
	GitRepo   repository.GitRepository
	TagPrefix string
	Steps     StepRecorder
}

// Execute deletes <prefix>-<project>-<number> and creates
// <prefix>-<project>-<number>-<RESULT>. It returns the created tag name.
func (uc *TagBuildUseCase) Execute(ctx context.Context, build domain.BuildContext) (string, error) {
	prefix := uc.TagPrefix
	if prefix == "" {
		prefix = domain.DefaultTagPrefix
	}
	baseTag := domain.BaseTagName(prefix, build.ProjectName, build.Number)
	err := uc.GitRepo.DeleteTag(ctx, baseTag)
	recordStep(uc.Steps, domain.StepTypeDeleteTag, baseTag, err)
	if err != nil {
		return "", fmt.Errorf("failed to delete tag %s: %w", baseTag, err)
	}
	tagName := domain.BuildTagName(prefix, build.ProjectName, build.Number, build.Result)
	err = uc.GitRepo.CreateTag(ctx, tagName, domain.TagMessage(build.Number))
	recordStep(uc.Steps, domain.StepTypeCreateTag, tagName, err)
	if err != nil {
		return "", fmt.Errorf("failed to create tag %s: %w", tagName, err)
	}
	return tagName, nil
}

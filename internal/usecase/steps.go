package usecase

import "github.com/compozy/gitpublisher/internal/domain"

// StepRecorder receives the outcome of each git operation a use case performs.
// *domain.PublishRecord satisfies it.
type StepRecorder interface {
	AddStep(step domain.StepType, target string, err error)
}

func recordStep(rec StepRecorder, step domain.StepType, target string, err error) {
	if rec != nil {
		rec.AddStep(step, target, err)
	}
}

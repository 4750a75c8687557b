package domain

import (
	"time"
)

// PublishOutcome represents the terminal state of a publish run
type PublishOutcome string

const (
	PublishOutcomePending   PublishOutcome = "pending"
	PublishOutcomePublished PublishOutcome = "published"
	PublishOutcomeSkipped   PublishOutcome = "skipped"
	PublishOutcomeFailed    PublishOutcome = "failed"
)

// StepType identifies a step of the publish workflow
type StepType string

const (
	StepTypeDeleteTag StepType = "delete_tag"
	StepTypeCreateTag StepType = "create_tag"
	StepTypePush      StepType = "push"
)

// PublishRecord is the stored result of a single publish run
type PublishRecord struct {
	ID           string         `json:"id"`
	Project      string         `json:"project"`
	BuildNumber  int            `json:"build_number"`
	Result       string         `json:"result"`
	TagName      string         `json:"tag_name,omitempty"`
	Pushed       bool           `json:"pushed"`
	Remote       string         `json:"remote,omitempty"`
	TargetBranch string         `json:"target_branch,omitempty"`
	HeadCommit   string         `json:"head_commit,omitempty"`
	Steps        []StepRecord   `json:"steps"`
	Outcome      PublishOutcome `json:"outcome"`
	Error        string         `json:"error,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
}

// StepRecord records one completed or failed step
type StepRecord struct {
	Type        StepType  `json:"type"`
	Target      string    `json:"target"`
	CompletedAt time.Time `json:"completed_at"`
	Error       string    `json:"error,omitempty"`
}

// NewPublishRecord creates a pending record for the given build
func NewPublishRecord(id string, build BuildContext) *PublishRecord {
	return &PublishRecord{
		ID:          id,
		Project:     build.ProjectName,
		BuildNumber: build.Number,
		Result:      build.Result.String(),
		Steps:       []StepRecord{},
		Outcome:     PublishOutcomePending,
		StartedAt:   time.Now(),
	}
}

// AddStep appends a step record
func (r *PublishRecord) AddStep(step StepType, target string, err error) {
	rec := StepRecord{
		Type:        step,
		Target:      target,
		CompletedAt: time.Now(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	r.Steps = append(r.Steps, rec)
}

// Finish sets the terminal outcome
func (r *PublishRecord) Finish(outcome PublishOutcome, err error) {
	now := time.Now()
	r.Outcome = outcome
	r.FinishedAt = &now
	if err != nil {
		r.Error = err.Error()
	}
}

// LastStep returns the most recent step, or nil
func (r *PublishRecord) LastStep() *StepRecord {
	if len(r.Steps) == 0 {
		return nil
	}
	return &r.Steps[len(r.Steps)-1]
}

package orchestrator

import (
	"fmt"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/host"
)

// PublishPlan describes what Publish would do for a build without doing it.
type PublishPlan struct {
	Skipped    bool   `json:"skipped"`
	Reason     string `json:"reason,omitempty"`
	BaseTag    string `json:"base_tag,omitempty"`
	Tag        string `json:"tag,omitempty"`
	TagMessage string `json:"tag_message,omitempty"`
	Push       bool   `json:"push"`
	Remote     string `json:"remote,omitempty"`
	RefSpec    string `json:"ref_spec,omitempty"`
}

// Plan computes the tag and push operations for build. It neither opens the
// workspace nor resolves the environment.
func (p *BuildResultPublisher) Plan(build host.Build) (PublishPlan, error) {
	info := build.Info()
	scm := build.SCM()
	if !scm.IsGit() {
		return PublishPlan{Skipped: true, Reason: fmt.Sprintf("scm %q is not git", scm.Kind)}, nil
	}
	plan := PublishPlan{
		BaseTag:    domain.BaseTagName(p.cfg.TagPrefix, info.ProjectName, info.Number),
		Tag:        domain.BuildTagName(p.cfg.TagPrefix, info.ProjectName, info.Number, info.Result),
		TagMessage: domain.TagMessage(info.Number),
	}
	if err := ValidateTagName(plan.Tag); err != nil {
		return plan, err
	}
	if scm.Merge.ShouldPush(info.Result) {
		if err := ValidateBranchName(scm.Merge.TargetBranch); err != nil {
			return plan, err
		}
		plan.Push = true
		plan.Remote = remoteLabel(scm.Merge)
		plan.RefSpec = scm.Merge.RefSpec()
	}
	return plan, nil
}

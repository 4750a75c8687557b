package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/host"
	"github.com/compozy/gitpublisher/internal/repository"
	"github.com/compozy/gitpublisher/internal/service"
	"github.com/compozy/gitpublisher/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PublisherConfig contains the static settings of a publisher.
type PublisherConfig struct {
	TagPrefix     string
	TaggerName    string
	TaggerEmail   string
	StatusContext string
}

// BuildResultPublisher tags a finished build's workspace with its result and
// pushes successful merges back to the configured remote.
type BuildResultPublisher struct {
	workspace host.WorkspaceRunner
	openGit   repository.GitOpener
	cfg       PublisherConfig
	records   repository.PublishRecordRepository
	metrics   service.MetricsService
	github    repository.GithubRepository
	newID     func() string
}

// NewBuildResultPublisher creates a publisher. Record storage, metrics and
// commit status reporting are off until set with the With* methods.
func NewBuildResultPublisher(
	workspace host.WorkspaceRunner,
	openGit repository.GitOpener,
	cfg PublisherConfig,
) *BuildResultPublisher {
	if cfg.TagPrefix == "" {
		cfg.TagPrefix = domain.DefaultTagPrefix
	}
	return &BuildResultPublisher{
		workspace: workspace,
		openGit:   openGit,
		cfg:       cfg,
		newID:     func() string { return uuid.New().String() },
	}
}

// WithRecords persists a PublishRecord after every run.
func (p *BuildResultPublisher) WithRecords(records repository.PublishRecordRepository) *BuildResultPublisher {
	p.records = records
	return p
}

// WithMetrics records every run in metrics.
func (p *BuildResultPublisher) WithMetrics(metrics service.MetricsService) *BuildResultPublisher {
	p.metrics = metrics
	return p
}

// WithCommitStatus reports the created tag as a commit status on HEAD.
func (p *BuildResultPublisher) WithCommitStatus(github repository.GithubRepository) *BuildResultPublisher {
	p.github = github
	return p
}

// Config returns the publisher settings.
func (p *BuildResultPublisher) Config() PublisherConfig {
	return p.cfg
}

// Publish runs the tag and push sequence for build. It returns true when the
// sequence completed. A build whose SCM is not git is skipped and returns
// false without touching the workspace. Any git failure is written to
// listener, forces the build result to FAILURE and returns false; a tag that
// was already created is left in place.
func (p *BuildResultPublisher) Publish(ctx context.Context, build host.Build, listener host.BuildListener) bool {
	started := time.Now()
	info := build.Info()
	scm := build.SCM()
	record := domain.NewPublishRecord(p.newID(), info)

	if !scm.IsGit() {
		record.Finish(domain.PublishOutcomeSkipped, nil)
		p.report(ctx, build, record, listener, started)
		return false
	}

	err := p.workspace.Act(ctx, info.Workspace, func(ctx context.Context, dir string) error {
		return p.tagAndPush(ctx, dir, build, info, scm.Merge, record, listener)
	})
	if err != nil {
		listener.Error("Failed to push tags to origin repository: " + err.Error())
		build.SetResult(domain.ResultFailure)
		record.Result = domain.ResultFailure.String()
		record.Finish(domain.PublishOutcomeFailed, err)
		p.report(ctx, build, record, listener, started)
		return false
	}
	record.Finish(domain.PublishOutcomePublished, nil)
	p.report(ctx, build, record, listener, started)
	return true
}

func (p *BuildResultPublisher) tagAndPush(
	ctx context.Context,
	dir string,
	build host.Build,
	info domain.BuildContext,
	merge domain.MergeConfiguration,
	record *domain.PublishRecord,
	listener host.BuildListener,
) error {
	env := p.resolveEnvironment(ctx, build, listener)
	gitRepo, err := p.openGit(dir, repository.GitOptionsFromEnv(env, p.cfg.TaggerName, p.cfg.TaggerEmail))
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}
	if err := ValidateTagName(domain.BuildTagName(p.cfg.TagPrefix, info.ProjectName, info.Number, info.Result)); err != nil {
		return err
	}
	if head, err := gitRepo.HeadCommit(ctx); err == nil {
		record.HeadCommit = head
	} else {
		listener.Warn("Unable to resolve HEAD commit", zap.Error(err))
	}

	tagBuild := &usecase.TagBuildUseCase{GitRepo: gitRepo, TagPrefix: p.cfg.TagPrefix, Steps: record}
	tagName, err := tagBuild.Execute(ctx, info)
	if err != nil {
		return err
	}
	record.TagName = tagName

	if !merge.ShouldPush(info.Result) {
		return nil
	}
	if err := ValidateBranchName(merge.TargetBranch); err != nil {
		return err
	}
	record.Remote = remoteLabel(merge)
	record.TargetBranch = merge.TargetBranch
	listener.Info(fmt.Sprintf("Pushing result %s to %s branch of %s repository",
		tagName, merge.TargetBranch, record.Remote))
	pushMerge := &usecase.PushMergeUseCase{GitRepo: gitRepo, Steps: record}
	if err := pushMerge.Execute(ctx, merge); err != nil {
		return err
	}
	record.Pushed = true
	return nil
}

// resolveEnvironment never fails: an unreadable environment is reported and
// replaced by an empty one.
func (p *BuildResultPublisher) resolveEnvironment(
	ctx context.Context,
	build host.Build,
	listener host.BuildListener,
) map[string]string {
	env, err := build.Environment(ctx)
	if err != nil {
		listener.Warn("Unable to read build environment variables, continuing with an empty environment",
			zap.Error(err))
		return map[string]string{}
	}
	if env == nil {
		return map[string]string{}
	}
	return env
}

// report feeds the run into the configured side channels. Failures are only
// logged; the outcome of the run is already decided.
func (p *BuildResultPublisher) report(
	ctx context.Context,
	build host.Build,
	record *domain.PublishRecord,
	listener host.BuildListener,
	started time.Time,
) {
	result := build.Info().Result
	if p.metrics != nil {
		p.metrics.ObservePublish(record.Outcome, result, record.Pushed, time.Since(started))
		if err := p.metrics.Push(ctx, map[string]string{"project": record.Project}); err != nil {
			listener.Warn("Failed to push publish metrics", zap.Error(err))
		}
	}
	if p.records != nil {
		saveCtx, cancel := context.WithTimeout(ctx, RecordSaveTimeout)
		if err := p.records.Save(saveCtx, record); err != nil {
			listener.Warn("Failed to save publish record", zap.String("id", record.ID), zap.Error(err))
		}
		cancel()
	}
	if p.github != nil && record.TagName != "" && record.HeadCommit != "" {
		statusCtx, cancel := context.WithTimeout(ctx, StatusReportTimeout)
		status := &usecase.ReportCommitStatusUseCase{GithubRepo: p.github, Context: p.cfg.StatusContext}
		if err := status.Execute(statusCtx, record.HeadCommit, result, record.TagName); err != nil {
			listener.Warn("Failed to report commit status", zap.String("sha", record.HeadCommit), zap.Error(err))
		}
		cancel()
	}
}

func remoteLabel(merge domain.MergeConfiguration) string {
	if merge.RemoteName != "" {
		return merge.RemoteName
	}
	return merge.RemoteURL
}

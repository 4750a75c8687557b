package cmd

import (
	"fmt"

	"github.com/compozy/gitpublisher/internal/config"
	"github.com/compozy/gitpublisher/internal/host"
	"github.com/compozy/gitpublisher/internal/orchestrator"
	"github.com/compozy/gitpublisher/internal/plugin"
	"github.com/compozy/gitpublisher/internal/repository"
	"github.com/compozy/gitpublisher/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// container holds all the dependencies for the application.
type container struct {
	cfg *config.Config

	fsRepo  repository.FileSystemRepository
	records repository.PublishRecordRepository
	metrics service.MetricsService
	ghRepo  repository.GithubRepository
	plugin  plugin.Plugin
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	fsRepo := repository.NewOSFileSystem()
	records := repository.NewJSONRecordRepository(fsRepo, cfg.StateDir)
	metrics := service.NewMetricsService(prometheus.NewRegistry(), cfg.PushgatewayURL)

	// GitHub repository is optional - only create if token and repository are known
	var ghRepo repository.GithubRepository
	switch {
	case cfg.StatusReportingEnabled():
		ghRepo, err = repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	case cfg.GithubOwner != "" || cfg.GithubRepo != "":
		// Repository configured without a token: every status call warns
		ghRepo = repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo)
	}

	p, err := plugin.Lookup(plugin.GitPublisherName)
	if err != nil {
		return nil, err
	}

	return &container{
		cfg:     cfg,
		fsRepo:  fsRepo,
		records: records,
		metrics: metrics,
		ghRepo:  ghRepo,
		plugin:  p,
	}, nil
}

// newPublisher builds a publisher configured from the loaded config.
func (c *container) newPublisher() (*orchestrator.BuildResultPublisher, error) {
	inst, err := c.plugin.NewInstance(map[string]any{
		"tag_prefix":     c.cfg.TagPrefix,
		"tagger_name":    c.cfg.TaggerName,
		"tagger_email":   c.cfg.TaggerEmail,
		"status_context": c.cfg.StatusContext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure publisher: %w", err)
	}
	publisher := inst.NewPublisher(host.NewLocalWorkspace(c.fsRepo), repository.NewGitRepository).
		WithRecords(c.records).
		WithMetrics(c.metrics)
	if c.ghRepo != nil {
		publisher.WithCommitStatus(c.ghRepo)
	}
	return publisher, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(
		NewPublishCmd(c),
		NewDescribeCmd(c.plugin),
		NewCheckMaskCmd(c.plugin),
		NewHistoryCmd(c.records),
		newVersionCmd(),
	)
	return nil
}

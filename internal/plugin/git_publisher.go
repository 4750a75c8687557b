package plugin

import (
	"context"
	"fmt"

	"github.com/compozy/gitpublisher/internal/host"
	"github.com/compozy/gitpublisher/internal/orchestrator"
	"github.com/compozy/gitpublisher/internal/repository"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
)

const (
	GitPublisherName        = "git-publisher"
	GitPublisherDisplayName = "Push Merges back to origin"
	GitPublisherHelpFile    = "/plugin/git/gitPublisher.html"
)

func init() {
	if err := Register(NewGitPublisherPlugin(afero.NewOsFs())); err != nil {
		panic(err)
	}
}

// GitPublisherPlugin registers the build result publisher with the host.
type GitPublisherPlugin struct {
	fs afero.Fs
}

// NewGitPublisherPlugin creates the plugin. Workspace masks are checked on fs.
func NewGitPublisherPlugin(fs afero.Fs) *GitPublisherPlugin {
	return &GitPublisherPlugin{fs: fs}
}

func (p *GitPublisherPlugin) Name() string {
	return GitPublisherName
}

func (p *GitPublisherPlugin) DisplayName() string {
	return GitPublisherDisplayName
}

func (p *GitPublisherPlugin) HelpFile() string {
	return GitPublisherHelpFile
}

// IsApplicable is true for every job type.
func (p *GitPublisherPlugin) IsApplicable(string) bool {
	return true
}

// NeedsToRunAfterFinalized is true so the tag carries the final build result.
func (p *GitPublisherPlugin) NeedsToRunAfterFinalized() bool {
	return true
}

func (p *GitPublisherPlugin) RequiredMonitor() Monitor {
	return MonitorBuild
}

func (p *GitPublisherPlugin) CheckWorkspaceFileMask(ctx context.Context, workspace, mask string) FormValidation {
	return checkFileMask(ctx, p.fs, workspace, mask)
}

func (p *GitPublisherPlugin) NewInstance(form map[string]any) (*Instance, error) {
	inst := &Instance{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           inst,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create form decoder: %w", err)
	}
	if err := decoder.Decode(form); err != nil {
		return nil, fmt.Errorf("failed to decode form data: %w", err)
	}
	if inst.TagPrefix != "" {
		if err := orchestrator.ValidateTagName(inst.TagPrefix); err != nil {
			return nil, fmt.Errorf("invalid tag_prefix: %w", err)
		}
	}
	return inst, nil
}

// Instance is the per-job configuration of the publisher.
type Instance struct {
	TagPrefix     string `mapstructure:"tag_prefix"`
	TaggerName    string `mapstructure:"tagger_name"`
	TaggerEmail   string `mapstructure:"tagger_email"`
	StatusContext string `mapstructure:"status_context"`
}

// PublisherConfig returns the publisher settings of the instance.
func (i *Instance) PublisherConfig() orchestrator.PublisherConfig {
	return orchestrator.PublisherConfig{
		TagPrefix:     i.TagPrefix,
		TaggerName:    i.TaggerName,
		TaggerEmail:   i.TaggerEmail,
		StatusContext: i.StatusContext,
	}
}

// NewPublisher builds a publisher for the instance.
func (i *Instance) NewPublisher(
	workspace host.WorkspaceRunner,
	openGit repository.GitOpener,
) *orchestrator.BuildResultPublisher {
	return orchestrator.NewBuildResultPublisher(workspace, openGit, i.PublisherConfig())
}

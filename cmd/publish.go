package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/host"
	"github.com/spf13/cobra"
)

// publishFlags are the build facts the host hands to the publisher.
type publishFlags struct {
	project      string
	buildNumber  int
	result       string
	workspace    string
	scm          string
	merge        bool
	remote       string
	remoteURL    string
	targetBranch string
	envFiles     []string
	dryRun       bool
}

func (f *publishFlags) build() (*host.BuildRecord, error) {
	if f.project == "" {
		return nil, fmt.Errorf("--project is required")
	}
	if f.buildNumber < 0 {
		return nil, fmt.Errorf("--build-number must not be negative: %d", f.buildNumber)
	}
	result, err := domain.ParseResult(f.result)
	if err != nil {
		return nil, err
	}
	info := domain.BuildContext{
		ProjectName: f.project,
		Number:      f.buildNumber,
		Result:      result,
		Workspace:   f.workspace,
	}
	scm := domain.SCM{
		Kind: f.scm,
		Merge: domain.MergeConfiguration{
			Enabled:      f.merge,
			RemoteName:   f.remote,
			RemoteURL:    f.remoteURL,
			TargetBranch: f.targetBranch,
		},
	}
	return host.NewBuildRecord(info, scm, host.ProcessEnvironment{Files: f.envFiles}), nil
}

// NewPublishCmd creates the publish command
func NewPublishCmd(c *container) *cobra.Command {
	flags := &publishFlags{}
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Tag the workspace with the build result and push successful merges",
		Long: `Tag the build's workspace repository with <prefix>-<project>-<number>-<RESULT>,
replacing the tag <prefix>-<project>-<number>, and push HEAD to the merge
target branch when the build succeeded and merging is enabled.

The command exits with an error when tagging or pushing fails. Builds whose
SCM is not git are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			build, err := flags.build()
			if err != nil {
				return err
			}
			publisher, err := c.newPublisher()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.dryRun {
				plan, err := publisher.Plan(build)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			if publisher.Publish(cmd.Context(), build, host.NewBuildListener(out)) {
				return nil
			}
			if !build.SCM().IsGit() {
				fmt.Fprintf(out, "SCM %q is not git, nothing to publish\n", build.SCM().Kind)
				return nil
			}
			return fmt.Errorf("publish failed for %s #%d, build result is now %s",
				flags.project, flags.buildNumber, build.Result())
		},
	}

	cmd.Flags().StringVar(&flags.project, "project", "", "Project (job) name")
	cmd.Flags().IntVar(&flags.buildNumber, "build-number", 0, "Build number")
	cmd.Flags().StringVar(&flags.result, "result", domain.ResultSuccess.String(), "Build result")
	cmd.Flags().StringVar(&flags.workspace, "workspace", ".", "Build workspace containing the git checkout")
	cmd.Flags().StringVar(&flags.scm, "scm", c.cfg.SCM, "Source control system of the project")
	cmd.Flags().BoolVar(&flags.merge, "merge", c.cfg.Merge.Enabled, "Push HEAD to the target branch on success")
	cmd.Flags().StringVar(&flags.remote, "remote", c.cfg.Merge.Remote, "Name of the remote to push to")
	cmd.Flags().StringVar(&flags.remoteURL, "remote-url", c.cfg.Merge.RemoteURL, "URL to push to instead of a named remote")
	cmd.Flags().StringVar(&flags.targetBranch, "target-branch", c.cfg.Merge.TargetBranch, "Branch receiving the merge result")
	cmd.Flags().StringSliceVar(&flags.envFiles, "env-file", envFileDefault(c.cfg.EnvFile), "Dotenv file overlaid on the build environment")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the planned tag and push operations without running them")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("build-number")
	return cmd
}

func envFileDefault(file string) []string {
	if file == "" {
		return nil
	}
	return []string{file}
}

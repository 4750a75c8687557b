package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitpublisher",
	Short: "Tag finished builds with their result and push successful merges",
	Long: `gitpublisher runs after a CI build has finished. It replaces the build's
tag in the workspace repository with one that carries the build result and,
for successful builds with merging enabled, pushes HEAD to the target branch.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

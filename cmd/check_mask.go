package cmd

import (
	"fmt"

	"github.com/compozy/gitpublisher/internal/plugin"
	"github.com/spf13/cobra"
)

// NewCheckMaskCmd creates the check-mask command
func NewCheckMaskCmd(p plugin.Plugin) *cobra.Command {
	var workspace, mask string
	cmd := &cobra.Command{
		Use:   "check-mask",
		Short: "Validate a comma separated file mask against a workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := p.CheckWorkspaceFileMask(cmd.Context(), workspace, mask)
			if res.Kind == plugin.ValidationError {
				return fmt.Errorf("%s", res.Message)
			}
			if res.Message != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Kind, res.Message)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Kind)
			return nil
		},
	}
	cmd.Flags().StringVar(&workspace, "workspace", ".", "Workspace directory")
	cmd.Flags().StringVar(&mask, "mask", "", "Comma separated glob patterns")
	return cmd
}

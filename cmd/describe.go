package cmd

import (
	"encoding/json"

	"github.com/compozy/gitpublisher/internal/plugin"
	"github.com/spf13/cobra"
)

// NewDescribeCmd creates the describe command
func NewDescribeCmd(p plugin.Plugin) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the plugin registration data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plugin.Describe(p))
		},
	}
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/repository"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd(records repository.PublishRecordRepository) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a stored publish record",
		Long: `Show the record stored by a publish run. Without --id the most recent
record is printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				record *domain.PublishRecord
				err    error
			)
			if id != "" {
				record, err = records.Load(cmd.Context(), id)
			} else {
				record, err = records.LoadLatest(cmd.Context())
			}
			if errors.Is(err, repository.ErrRecordNotFound) {
				if id != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "record %s not found\n", id)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No publish records found")
				return nil
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(record)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Record id (defaults to the latest record)")
	return cmd
}

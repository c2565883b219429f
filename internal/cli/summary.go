package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/incidfilter/internal/incid"
)

// ErrNoSummary is returned when every code passed to summary is empty.
var ErrNoSummary = errors.New("no codes to summarise")

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary CODE...",
		Short: "Join habitat codes into a dot-separated summary",
		Long:  "Joins the non-empty codes with '.', failing when none is left.",
		Example: `  incidfilter summary CG3 "" B4
  # CG3.B4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, ok := incid.Summary(args...)
			if !ok {
				return ErrNoSummary
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), summary)
			return err
		},
	}
}

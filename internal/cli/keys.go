package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/incidfilter/internal/config"
	"github.com/rshade/incidfilter/internal/selection"
)

// NewKeysCmd creates the keys command, which pages a key list into
// single-column filter batches.
func NewKeysCmd() *cobra.Command {
	var (
		flags    batchFlags
		column   string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Page a key list into single-column filters",
		Long: `Reads newline-delimited keys and emits one filter per page of --page-size
keys, each an OR of equalities against --column. An empty list prints nothing.`,
		Example: `  incidfilter keys --input incids.txt --page-size 200
  cat incids.txt | incidfilter keys --input - --format sql --placeholder dollar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			flags.resolve(cfg)
			if column == "" {
				column = cfg.Selection.PageColumn
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = cfg.Batching.PageSize
			}

			role, err := selection.ParseKeyRole(column)
			if err != nil {
				return err
			}
			table := selection.LayerTable(flags.table)
			col, ok := table.Column(role.ColumnName())
			if !ok {
				return fmt.Errorf("%w: %s", selection.ErrKeyColumnMissing, column)
			}

			keys, err := readKeys(cmd, flags.input)
			if err != nil {
				return err
			}

			batches := selection.BatchByKey(pageSize, col, table, keys)
			logger.Debug().Ctx(cmd.Context()).
				Str("operation", "keys").
				Int("keys", len(keys)).
				Int("page_size", pageSize).
				Int("batches", len(batches)).
				Msg("keys paged")
			if len(batches) == 0 {
				return nil
			}
			return renderBatches(cmd.OutOrStdout(), flags.format, flags.placeholder, batches)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&column, "column", "", "key column to page on (default from config)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "keys per batch (default from config)")

	return cmd
}

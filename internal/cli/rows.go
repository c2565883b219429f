package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/incidfilter/internal/config"
	"github.com/rshade/incidfilter/internal/filter"
	"github.com/rshade/incidfilter/internal/selection"
)

// batchFlags are the flags shared by the batching commands.
type batchFlags struct {
	input       string
	table       string
	format      string
	placeholder string
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input file, or - for stdin")
	cmd.Flags().StringVar(&f.table, "table", "", "GIS layer table name (default from config)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: text, sql, json or msgpack (default from config)")
	cmd.Flags().StringVar(&f.placeholder, "placeholder", "", "SQL placeholder style: question or dollar (default from config)")
}

// resolve fills unset flags from cfg.
func (f *batchFlags) resolve(cfg *config.Config) {
	if f.table == "" {
		f.table = cfg.Selection.Table
	}
	if f.format == "" {
		f.format = cfg.Output.DefaultFormat
	}
	if f.placeholder == "" {
		f.placeholder = cfg.Output.Placeholder
	}
}

// NewRowsCmd creates the rows command, which cuts a selection into
// multi-column filter batches.
func NewRowsCmd() *cobra.Command {
	var (
		flags     batchFlags
		keys      string
		blockSize int
	)

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Batch selected rows into multi-column filters",
		Long: `Reads a YAML selection and emits one filter batch per block of rows.

Each row contributes one parenthesised group of key equalities; groups are
joined with OR. A block holds at most --block-size rows.`,
		Example: `  incidfilter rows --input selection.yaml
  incidfilter rows --input selection.yaml --keys incid --block-size 500 --format sql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			flags.resolve(cfg)
			if !cmd.Flags().Changed("keys") {
				keys = cfg.Selection.KeyColumns
			}
			if !cmd.Flags().Changed("block-size") {
				blockSize = cfg.Batching.BlockSize
			}
			batches, err := runRows(cmd, flags, keys, blockSize)
			if err != nil {
				return err
			}
			return renderBatches(cmd.OutOrStdout(), flags.format, flags.placeholder, batches)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&keys, "keys", config.DefaultKeyColumns, "comma-separated key columns")
	cmd.Flags().IntVar(&blockSize, "block-size", 0, "rows per batch (default from config)")

	return cmd
}

func runRows(cmd *cobra.Command, flags batchFlags, keys string, blockSize int) ([]filter.Batch, error) {
	ctx := cmd.Context()

	roles, err := selection.ParseKeyRoles(keys)
	if err != nil {
		return nil, err
	}
	keySet, err := selection.NewKeySet(selection.LayerTable(flags.table), roles...)
	if err != nil {
		return nil, err
	}

	sel, err := readSelection(cmd, flags.input)
	if err != nil {
		return nil, err
	}

	batches, err := selection.BatchRows(sel.Records, keySet, blockSize)
	if err != nil {
		return nil, err
	}

	logger.Debug().Ctx(ctx).
		Str("operation", "rows").
		Int("rows", len(sel.Records)).
		Int("block_size", blockSize).
		Int("batches", len(batches)).
		Msg("selection batched")
	return batches, nil
}

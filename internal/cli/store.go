package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/incidfilter/internal/config"
	"github.com/rshade/incidfilter/internal/selection"
	"github.com/rshade/incidfilter/internal/store"
)

// storeLockTimeout bounds the wait for another process holding the database.
const storeLockTimeout = 2 * time.Second

// openStore opens the store at path, or at the configured location when path
// is empty.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		var err error
		if path, err = config.GetGlobalConfig().StorePath(); err != nil {
			return nil, err
		}
		if err := config.EnsureConfigDir(); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}
	}
	return store.Open(filepath.Clean(path), 0600, &store.Options{Timeout: storeLockTimeout})
}

// NewStoreCmd creates the store command group.
func NewStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Local record store commands",
		Long: `Manages a local bolt database of incid records and lookup tables.

Stored records can be queried with the same batches the rows command prints,
which is a quick way to check what a selection will match.`,
	}
	cmd.PersistentFlags().String("db", "", "store path (default $INCIDFILTER_DB or $INCIDFILTER_HOME/incid.db)")
	cmd.AddCommand(newStoreImportCmd(), newStoreImportLookupCmd(), newStoreSelectCmd())
	return cmd
}

func newStoreImportCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Load records from a YAML selection",
		Example: `  incidfilter store import --input layer.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dbPath, _ := cmd.Flags().GetString("db")

			sel, err := readSelection(cmd, input)
			if err != nil {
				return err
			}

			s, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.PutRecords(ctx, sel.Records...); err != nil {
				return err
			}
			total, err := s.Count()
			if err != nil {
				return err
			}
			_, err = printer.Fprintf(cmd.OutOrStdout(), "imported %d records (%d stored)\n", len(sel.Records), total)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML selection file, or - for stdin")
	return cmd
}

func newStoreImportLookupCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:     "import-lookup",
		Short:   "Load a YAML lookup table",
		Example: `  incidfilter store import-lookup --input lut_process.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dbPath, _ := cmd.Flags().GetString("db")

			table, err := readLookupTable(cmd, input)
			if err != nil {
				return err
			}

			s, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.PutLookup(ctx, table); err != nil {
				return err
			}
			_, err = printer.Fprintf(cmd.OutOrStdout(), "imported lookup table %s (%d rows)\n", table.Name, len(table.Rows))
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML lookup table, or - for stdin")
	return cmd
}

func newStoreSelectCmd() *cobra.Command {
	var (
		flags       batchFlags
		keys        string
		blockSize   int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Run a selection's filter batches against the store",
		Example: `  incidfilter store select --input selection.yaml
  incidfilter store select --input selection.yaml --keys incid --concurrency 4 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()
			flags.resolve(cfg)
			if !cmd.Flags().Changed("keys") {
				keys = cfg.Selection.KeyColumns
			}
			if !cmd.Flags().Changed("block-size") {
				blockSize = cfg.Batching.BlockSize
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = cfg.Batching.Concurrency
			}
			dbPath, _ := cmd.Flags().GetString("db")

			batches, err := runRows(cmd, flags, keys, blockSize)
			if err != nil {
				return err
			}

			s, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := selection.Apply(ctx, s, batches, concurrency)
			if err != nil {
				return err
			}
			logger.Info().Ctx(ctx).
				Str("operation", "store_select").
				Int("batches", len(batches)).
				Int("matched", len(records)).
				Msg("selection applied")
			return renderRecords(cmd.OutOrStdout(), flags.format, records)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&keys, "keys", config.DefaultKeyColumns, "comma-separated key columns")
	cmd.Flags().IntVar(&blockSize, "block-size", 0, "rows per batch (default from config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "batches run at once (default from config)")
	return cmd
}

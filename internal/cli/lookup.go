package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/incidfilter/internal/lookup"
)

// ErrLookupSource is returned when both a file and a stored table are given.
var ErrLookupSource = errors.New("use either --input or --table, not both")

// NewLookupCmd creates the lookup command, which resolves an operation to its
// lookup-table code.
func NewLookupCmd() *cobra.Command {
	var (
		input     string
		tableName string
		dbPath    string
		matchOnly bool
	)

	cmd := &cobra.Command{
		Use:   "lookup OPERATION",
		Short: "Resolve an operation's lookup code",
		Long: `Resolves an editing operation (BulkUpdate, LogicalSplit, ...) to its code.

The built-in code map is tried first. With a lookup table (--input file, or
--table stored by "store import-lookup"), a code missing from the table falls
back to matching the table's descriptions against the operation name split
into words. Use --match-only to skip the built-in map.`,
		Example: `  incidfilter lookup BulkUpdate
  incidfilter lookup LogicalMerge --input lookup_process.yaml --match-only
  incidfilter lookup PhysicalSplit --table lut_process`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := lookup.ParseOperation(args[0])
			if err != nil {
				return err
			}

			var table *lookup.Table
			switch {
			case input != "" && tableName != "":
				return ErrLookupSource
			case input != "":
				if table, err = readLookupTable(cmd, input); err != nil {
					return err
				}
			case tableName != "":
				s, err := openStore(dbPath)
				if err != nil {
					return err
				}
				table, err = s.LookupTable(ctx, tableName)
				if cerr := s.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
			}

			codes := lookup.DefaultCodes()
			if matchOnly {
				codes = lookup.Codes{}
			}

			res := lookup.NewResolver(codes, table).Resolve(ctx, op)
			if err := res.Err(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Code)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML lookup table")
	cmd.Flags().StringVar(&tableName, "table", "", "lookup table stored in the database")
	cmd.Flags().StringVar(&dbPath, "db", "", "store path (default from config)")
	cmd.Flags().BoolVar(&matchOnly, "match-only", false, "resolve by description only")

	return cmd
}

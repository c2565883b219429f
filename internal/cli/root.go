// Package cli implements the incidfilter command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/incidfilter/internal/config"
	"github.com/rshade/incidfilter/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the incidfilter CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "incidfilter",
		Short:         "Build batched SQL filters for HLU selections",
		Long:          "incidfilter: cut habitat/land-use selections into bounded SQL filter batches",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, lookupEnv); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default $INCIDFILTER_HOME/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "log format (console, json)")

	cmd.AddCommand(
		NewRowsCmd(), NewKeysCmd(), NewSummaryCmd(), NewLookupCmd(), NewStoreCmd(),
	)
	return cmd
}

// loadConfig installs the global configuration and validates it. An explicit
// --config file is loaded strictly; otherwise the default locations are used.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		cfg := config.GetGlobalConfig()
		if err := cfg.ApplyEnv(lookupEnv); err != nil {
			return fmt.Errorf("applying environment: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	wd, _ := os.Getwd()
	cfg, err := config.Load(path, wd)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return fmt.Errorf("applying environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Cut a selection into filter batches of 50 rows, keyed on incid and toid
  incidfilter rows --input selection.yaml --keys incid,toid --block-size 50

  # Render the same batches as parameterised SQL for PostgreSQL
  incidfilter rows --input selection.yaml --format sql --placeholder dollar

  # Page a list of incids into IN-style filters
  incidfilter keys --input incids.txt --page-size 200

  # Summarise habitat codes
  incidfilter summary CG3 "" B4

  # Resolve an operation code from a lookup table
  incidfilter lookup BulkUpdate --input lookup_process.yaml

  # Load a selection into the local store and query it back
  incidfilter store import --input layer.yaml
  incidfilter store select --input selection.yaml`

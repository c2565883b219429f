package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/incidfilter/internal/incid"
	"github.com/rshade/incidfilter/internal/lookup"
)

// ErrNoInput is returned when a command that reads a file was given none.
var ErrNoInput = errors.New("--input is required")

// openInput opens path for reading; "-" reads the command's stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	switch path {
	case "":
		return nil, ErrNoInput
	case "-":
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

func readSelection(cmd *cobra.Command, path string) (*incid.Selection, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sel, err := incid.ParseSelection(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sel, nil
}

func readLookupTable(cmd *cobra.Command, path string) (*lookup.Table, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	t, err := lookup.ParseTable(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// readKeys reads one key per line. Blank lines and lines starting with '#'
// are skipped.
func readKeys(cmd *cobra.Command, path string) ([]string, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var keys []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading keys from %s: %w", path, err)
	}
	return keys, nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/lipgloss"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/incidfilter/internal/filter"
	"github.com/rshade/incidfilter/internal/incid"
)

// Output formats.
const (
	formatText    = "text"
	formatSQL     = "sql"
	formatJSON    = "json"
	formatMsgpack = "msgpack"
)

// Output errors.
var (
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrUnknownPlaceholder = errors.New("unknown placeholder style")
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

func headerColor() lipgloss.Color  { return lipgloss.Color("39") }
func summaryColor() lipgloss.Color { return lipgloss.Color("246") }
func dirtyColor() lipgloss.Color   { return lipgloss.Color("214") }

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// parsePlaceholder maps a placeholder flag value to a squirrel format.
func parsePlaceholder(name string) (sq.PlaceholderFormat, error) {
	switch strings.ToLower(name) {
	case "", "question":
		return filter.Question, nil
	case "dollar":
		return filter.Dollar, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlaceholder, name)
	}
}

// renderBatches writes batches to w in the given format.
func renderBatches(w io.Writer, format, placeholder string, batches []filter.Batch) error {
	switch format {
	case formatText:
		return renderBatchesText(w, batches)
	case formatSQL:
		ph, err := parsePlaceholder(placeholder)
		if err != nil {
			return err
		}
		return renderBatchesSQL(w, ph, batches)
	case formatJSON:
		return writeJSON(w, filter.Documents(batches))
	case formatMsgpack:
		return msgpack.NewEncoder(w).Encode(filter.Documents(batches))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderBatchesText(w io.Writer, batches []filter.Batch) error {
	styled := isWriterTerminal(w)
	header := lipgloss.NewStyle().Bold(true).Foreground(headerColor())
	footer := lipgloss.NewStyle().Foreground(summaryColor())

	rows, conditions := 0, 0
	for i, b := range batches {
		rows += b.Groups()
		conditions += b.Len()

		line := printer.Sprintf("batch %d/%d: %d rows, %d conditions", i+1, len(batches), b.Groups(), b.Len())
		if styled {
			line = header.Render(line)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", line, b.String()); err != nil {
			return err
		}
	}

	total := printer.Sprintf("%d batches, %d rows, %d conditions", len(batches), rows, conditions)
	if styled {
		total = footer.Render(total)
	}
	_, err := fmt.Fprintln(w, total)
	return err
}

func renderBatchesSQL(w io.Writer, ph sq.PlaceholderFormat, batches []filter.Batch) error {
	for _, b := range batches {
		query, args, err := filter.SelectSQL(b, ph)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s;\n-- args: %v\n", query, args); err != nil {
			return err
		}
	}
	return nil
}

// renderRecords writes records to w. The sql format does not apply to records.
func renderRecords(w io.Writer, format string, records []incid.Record) error {
	switch format {
	case formatText:
		return renderRecordsText(w, records)
	case formatJSON:
		return writeJSON(w, incid.Selection{Records: records})
	case formatMsgpack:
		return msgpack.NewEncoder(w).Encode(incid.Selection{Records: records})
	default:
		return fmt.Errorf("%w for records: %q", ErrUnknownFormat, format)
	}
}

func renderRecordsText(w io.Writer, records []incid.Record) error {
	styled := isWriterTerminal(w)
	dirty := lipgloss.NewStyle().Foreground(dirtyColor())

	for _, r := range records {
		summary, ok := r.Summary()
		if !ok {
			summary = "-"
		}
		state := r.State.String()
		if styled && r.Dirty() {
			state = dirty.Render(state)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Incid, r.Toid, r.ToidFragmentID, state, summary); err != nil {
			return err
		}
	}
	_, err := printer.Fprintf(w, "%d records\n", len(records))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

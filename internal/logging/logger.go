// Package logging configures the zerolog logger shared by the incidfilter CLI and
// its library packages.
//
// Library code never constructs loggers itself. It pulls one from the context via
// FromContext, which falls back to the package logger when the context carries none.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output targets and formats understood by NewLogger.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	OutputStderr  = "stderr"
	OutputStdout  = "stdout"
	OutputFile    = "file"
)

// Config describes how a logger is built.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult is returned by NewLoggerWithPath so the caller can report where
// logs go and close the file handle on shutdown.
type LogPathResult struct {
	Logger         zerolog.Logger
	FilePath       string
	UsingFile      bool
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Logger is the package logger used when a context carries none.
//
//nolint:gochecknoglobals // zerolog default context logger must point at a stable address
var Logger zerolog.Logger

//nolint:gochecknoglobals // guards Logger replacement
var loggerMu sync.RWMutex

//nolint:gochecknoinits // package logger must exist before configuration is loaded
func init() {
	SetGlobalLogger(zerolog.Nop())
}

// SetGlobalLogger replaces the package logger and registers it as zerolog's
// default context logger.
func SetGlobalLogger(logger zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

// GetLogger returns a copy of the package logger.
func GetLogger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return Logger
}

// ParseLevel parses level, defaulting to info on empty or unknown input.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger writing to w using cfg's level, format and caller
// settings. Events logged with .Ctx(ctx) carry the context's trace ID.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).Hook(TraceHook{}).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLoggerWithPath builds a logger for cfg and opens the log file when the output
// is "file". If the file cannot be opened it falls back to stderr and records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	var result LogPathResult

	switch cfg.Output {
	case OutputFile:
		if cfg.File == "" {
			result.FallbackUsed = true
			result.FallbackReason = "no log file configured"
			break
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
			break
		}
		result.file = f
		result.FilePath = cfg.File
		result.UsingFile = true
		result.Logger = NewLogger(cfg, f)
		return result
	case OutputStdout:
		result.Logger = NewLogger(cfg, os.Stdout)
		return result
	}

	result.Logger = NewLogger(cfg, os.Stderr)
	return result
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where logs are being written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user file logging was requested but unavailable.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}

package config

import (
	"github.com/rshade/incidfilter/internal/logging"
)

// LoggingConfig is the logging section of the configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
	Caller bool   `yaml:"caller"`
}

// ToLoggingConfig converts the section for the logging package. A configured
// file switches output to that file; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
		Caller: lc.Caller,
	}
}

// GetLoggingConfig returns a copy of the global configuration's logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}

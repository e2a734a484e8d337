// Package config holds runtime settings (environment plus defaults) and
// the optional per-project configuration file.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"log/slog"
)

// Settings holds the runtime configuration of a scan run
type Settings struct {
	// Output settings
	OutputFile  string
	PrettyPrint bool

	// Scan behavior
	Scanners        []string // Scanner ids to run; empty or "all" runs everything
	ExcludePatterns []string
	Verbose         bool
	NoProgress      bool // Disable progress output (enabled by default)

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		OutputFile:      "architecture.json",
		PrettyPrint:     true,
		Scanners:        []string{},
		ExcludePatterns: []string{},
		Verbose:         false,
		NoProgress:      false,
		LogLevel:        slog.LevelError, // Only errors by default
		LogFormat:       "text",
		LogFile:         "", // Empty = stderr
	}
}

// LoadSettings creates settings from defaults and applies environment
// variable overrides
func LoadSettings() *Settings {
	settings := DefaultSettings()

	if outputFile := os.Getenv("DOC_ARCHITECT_OUTPUT"); outputFile != "" {
		settings.OutputFile = outputFile
	}

	if scanners := os.Getenv("DOC_ARCHITECT_SCANNERS"); scanners != "" {
		settings.Scanners = splitTrimmed(scanners)
	}

	if excludePatterns := os.Getenv("DOC_ARCHITECT_EXCLUDE_DIRS"); excludePatterns != "" {
		settings.ExcludePatterns = splitTrimmed(excludePatterns)
	}

	if pretty := os.Getenv("DOC_ARCHITECT_PRETTY"); pretty != "" {
		settings.PrettyPrint = strings.ToLower(pretty) == "true"
	}

	if logLevel := os.Getenv("DOC_ARCHITECT_LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := os.Getenv("DOC_ARCHITECT_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := os.Getenv("DOC_ARCHITECT_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	if verbose := os.Getenv("DOC_ARCHITECT_VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	if noProgress := os.Getenv("DOC_ARCHITECT_NO_PROGRESS"); noProgress != "" {
		settings.NoProgress = strings.ToLower(noProgress) == "true"
	}

	return settings
}

func splitTrimmed(value string) []string {
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// ParseLogLevel converts string log level to slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger sets up the logger based on settings
func (s *Settings) ConfigureLogger() *slog.Logger {
	var handler slog.Handler

	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stderr if file can't be opened
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{
		Level: s.LogLevel,
	}

	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

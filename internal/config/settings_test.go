package config

import (
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "architecture.json", settings.OutputFile, "OutputFile should be architecture.json by default")
	assert.True(t, settings.PrettyPrint, "PrettyPrint should be true by default")
	assert.Empty(t, settings.Scanners, "all scanners run by default")
	assert.Empty(t, settings.ExcludePatterns)
	assert.Equal(t, slog.LevelError, settings.LogLevel, "LogLevel should be Error by default")
	assert.Equal(t, "text", settings.LogFormat, "LogFormat should be text by default")
}

func TestLoadSettings_WithEnvironmentVariables(t *testing.T) {
	t.Setenv("DOC_ARCHITECT_OUTPUT", "/tmp/model.json")
	t.Setenv("DOC_ARCHITECT_PRETTY", "false")
	t.Setenv("DOC_ARCHITECT_SCANNERS", "maven, spring-rest")
	t.Setenv("DOC_ARCHITECT_EXCLUDE_DIRS", "vendor,build")
	t.Setenv("DOC_ARCHITECT_LOG_LEVEL", "debug")
	t.Setenv("DOC_ARCHITECT_LOG_FORMAT", "json")

	settings := LoadSettings()

	assert.Equal(t, "/tmp/model.json", settings.OutputFile)
	assert.False(t, settings.PrettyPrint)
	assert.Equal(t, []string{"maven", "spring-rest"}, settings.Scanners)
	assert.Equal(t, []string{"vendor", "build"}, settings.ExcludePatterns)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	assert.Equal(t, "json", settings.LogFormat)
}

func TestLoadSettings_InvalidLogLevelKeepsDefault(t *testing.T) {
	t.Setenv("DOC_ARCHITECT_LOG_LEVEL", "loud")

	settings := LoadSettings()

	assert.Equal(t, slog.LevelError, settings.LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"ERROR", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

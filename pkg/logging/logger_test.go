package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}

	if cfg.Pretty != false {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		logFn    func(logger zerolog.Logger, msg string)
		testMsg  string
		contains string
	}{
		{
			name:  "info_level",
			level: LevelInfo,
			logFn: func(logger zerolog.Logger, msg string) {
				logger.Info().Msg(msg)
			},
			testMsg:  "test info message",
			contains: "test info message",
		},
		{
			name:  "debug_level",
			level: LevelDebug,
			logFn: func(logger zerolog.Logger, msg string) {
				logger.Debug().Msg(msg)
			},
			testMsg:  "test debug message",
			contains: "test debug message",
		},
		{
			name:  "warn_level",
			level: LevelWarn,
			logFn: func(logger zerolog.Logger, msg string) {
				logger.Warn().Msg(msg)
			},
			testMsg:  "test warn message",
			contains: "test warn message",
		},
		{
			name:  "error_level",
			level: LevelError,
			logFn: func(logger zerolog.Logger, msg string) {
				logger.Error().Msg(msg)
			},
			testMsg:  "test error message",
			contains: "test error message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{
				Level:  tt.level,
				Pretty: false,
				Output: buf,
			})

			tt.logFn(logger, tt.testMsg)

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Log output %q does not contain %q", output, tt.contains)
			}
		})
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{
		Level:  LevelWarn,
		Pretty: false,
		Output: buf,
	})

	logger.Debug().Msg("debug should be filtered")
	logger.Info().Msg("info should be filtered")
	logger.Warn().Msg("warn should pass")

	output := buf.String()
	if strings.Contains(output, "debug should be filtered") {
		t.Error("Debug message should have been filtered at warn level")
	}
	if strings.Contains(output, "info should be filtered") {
		t.Error("Info message should have been filtered at warn level")
	}
	if !strings.Contains(output, "warn should pass") {
		t.Error("Warn message should have been logged at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input LogLevel
		want  zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger("city-service")
	logger.Info().Msg("component test")

	output := buf.String()
	if !strings.Contains(output, "city-service") {
		t.Errorf("Log output %q does not contain component name", output)
	}
}

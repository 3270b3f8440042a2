package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trekking/config"
	"trekking/shared/failure"
	"trekking/shared/logger"
)

// captureJSON routes the global logger into a buffer for the duration of the test.
func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any

	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}

		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))

		lines = append(lines, line)
	}

	return lines
}

func TestInitLogger(t *testing.T) {
	captureJSON(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     zerolog.Level
	}{
		{name: "debug for local runs", logLevel: "debug", want: zerolog.DebugLevel},
		{name: "info for production", logLevel: "info", want: zerolog.InfoLevel},
		{name: "warn", logLevel: "warn", want: zerolog.WarnLevel},
		{name: "error", logLevel: "error", want: zerolog.ErrorLevel},
		{name: "disabled", logLevel: "disabled", want: zerolog.Disabled},
		{name: "unknown level falls back to trace", logLevel: "verbose", want: zerolog.TraceLevel},
		{name: "unset level", logLevel: "", want: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureJSON(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestBookingRefByLevel(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		event      zerolog.Level
		logged     bool
	}{
		{name: "warn passes a warn threshold", configured: "warn", event: zerolog.WarnLevel, logged: true},
		{name: "error passes a warn threshold", configured: "warn", event: zerolog.ErrorLevel, logged: true},
		{name: "info is dropped at warn", configured: "warn", event: zerolog.InfoLevel, logged: false},
		{name: "warn is dropped at error", configured: "error", event: zerolog.WarnLevel, logged: false},
		{name: "error passes an error threshold", configured: "error", event: zerolog.ErrorLevel, logged: true},
		{name: "debug passes a debug threshold", configured: "debug", event: zerolog.DebugLevel, logged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureJSON(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.configured
			logger.SetLogLevel(cfg)

			log.WithLevel(tt.event).Str("booking_ref", "NTB-1042").Msg("booking payment declined")

			if !tt.logged {
				assert.Empty(t, buf.String())
				return
			}

			lines := decodeLines(t, buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.event.String(), lines[0]["level"])
			assert.Equal(t, "NTB-1042", lines[0]["booking_ref"])
			assert.Equal(t, "booking payment declined", lines[0]["message"])
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "plain error",
			err:  errors.New("stripe unavailable"),
			want: []string{"stripe unavailable"},
		},
		{
			name: "failure wrapped with fmt",
			err:  fmt.Errorf("failed to load booking: %w", failure.NotFound("booking NTB-1042 not found")),
			want: []string{"failed to load booking: booking NTB-1042 not found"},
		},
		{
			name: "failure wrapped with pkg/errors",
			err:  pkgerrors.Wrap(failure.PriceChangedError, "submit booking"),
			want: []string{failure.PriceChangedError.Message, "submit booking"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureJSON(t)
			zerolog.SetGlobalLevel(zerolog.TraceLevel)

			logger.ErrorWithStack(tt.err)

			lines := decodeLines(t, buf)
			require.Len(t, lines, 1)
			assert.Equal(t, zerolog.ErrorLevel.String(), lines[0]["level"])

			message, ok := lines[0]["message"].(string)
			require.True(t, ok)

			for _, want := range tt.want {
				assert.Contains(t, message, want)
			}

			assert.Contains(t, message, "logger_test.TestErrorWithStack")
		})
	}
}

func TestUseJSON(t *testing.T) {
	buf := captureJSON(t)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg := &config.Config{}
	cfg.App.Name = "trekking"

	logger.UseJSON(buf, cfg)
	log.Info().Str("booking_ref", "NTB-1").Msg("booking created")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "trekking", lines[0]["service"])
	assert.Equal(t, "NTB-1", lines[0]["booking_ref"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.NotEmpty(t, lines[0]["time"])
}

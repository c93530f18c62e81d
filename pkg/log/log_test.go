package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		name        string
		lvl         string
		parsedLevel slog.Level
		hasErr      bool
	}{
		{
			name:        "Empty string",
			lvl:         "",
			parsedLevel: 0,
			hasErr:      true,
		},
		{
			name:        "Uppercase level",
			lvl:         "DEBUG",
			parsedLevel: DebugLevel,
			hasErr:      false,
		},
		{
			name:        "Debug",
			lvl:         "debug",
			parsedLevel: DebugLevel,
			hasErr:      false,
		},
		{
			name:        "Info",
			lvl:         "info",
			parsedLevel: InfoLevel,
			hasErr:      false,
		},
		{
			name:        "Warn",
			lvl:         "warn",
			parsedLevel: WarnLevel,
			hasErr:      false,
		},
		{
			name:        "Error",
			lvl:         "error",
			parsedLevel: ErrorLevel,
			hasErr:      false,
		},
		{
			name:        "Unsupported level",
			lvl:         "XXX",
			parsedLevel: 0,
			hasErr:      true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, err := ParseLevel(tc.lvl)

			assert.Equal(t, tc.parsedLevel, l)

			if tc.hasErr {
				assert.NotNil(t, err)
				assert.ErrorContains(t, err, "unrecognized level: ")
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name   string
		lvl    string
		format string
		want   string
		hasErr bool
	}{
		{name: "Text", lvl: "info", format: "text", want: "level=INFO msg=hello request_id=abc\n"},
		{name: "Default format", lvl: "info", format: "", want: "level=INFO msg=hello request_id=abc\n"},
		{name: "Json", lvl: "info", format: "json", want: `{"level":"INFO","msg":"hello","request_id":"abc"}` + "\n"},
		{name: "Filtered", lvl: "error", format: "text", want: ""},
		{name: "Bad level", lvl: "loud", format: "text", hasErr: true},
		{name: "Bad format", lvl: "info", format: "xml", hasErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(buf, tc.lvl, tc.format)
			if tc.hasErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)

			// drop the time attribute so the output is stable
			logger = slog.New(stripTime(logger.Handler()))
			logger.Info("hello", "request_id", "abc")

			assert.Equal(t, tc.want, buf.String())
		})
	}
}

type timeless struct {
	slog.Handler
}

func stripTime(h slog.Handler) slog.Handler {
	return &timeless{h}
}

func (h *timeless) Handle(ctx context.Context, r slog.Record) error {
	r.Time = time.Time{}
	return h.Handler.Handle(ctx, r)
}

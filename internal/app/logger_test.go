package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/linxiao/corpora/internal/config"
)

// bufLogger mirrors NewLogger but writes to buf so tests can inspect output.
func bufLogger(buf *bytes.Buffer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     logLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(buf, opts))
	}
	return slog.New(slog.NewTextHandler(buf, opts))
}

func TestNewLogger_SetsDefault(t *testing.T) {
	log := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	if log == nil {
		t.Fatal("NewLogger returned nil")
	}
	if slog.Default().Handler() != log.Handler() {
		t.Error("returned logger is not the slog default")
	}
}

func TestLogLevel_Filtering(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := bufLogger(&buf, config.LogConfig{Level: tt.level, Format: "text"})

			log.Log(context.TODO(), tt.want, "at threshold")
			if buf.Len() == 0 {
				t.Errorf("message at %v was suppressed", tt.want)
			}

			buf.Reset()
			log.Log(context.TODO(), tt.want-1, "below threshold")
			if buf.Len() != 0 {
				t.Errorf("message below %v got through: %s", tt.want, buf.String())
			}
		})
	}
}

func TestLoggerFormats(t *testing.T) {
	var textBuf, jsonBuf bytes.Buffer

	bufLogger(&textBuf, config.LogConfig{Level: "info", Format: "text"}).Info("hello")
	bufLogger(&jsonBuf, config.LogConfig{Level: "info", Format: "json"}).Info("hello")

	if !strings.Contains(textBuf.String(), "source=") {
		t.Error("text output lacks source location")
	}

	var m map[string]any
	if err := json.Unmarshal(jsonBuf.Bytes(), &m); err != nil {
		t.Fatalf("json output is not valid JSON: %v", err)
	}
	if _, ok := m["source"]; ok {
		t.Error("json output should omit source location")
	}
}

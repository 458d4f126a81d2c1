package obs

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"error", "error", zerolog.ErrorLevel},
		{"unknown name falls back to info", "verbose", zerolog.InfoLevel},
		{"empty name falls back to info", "", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level)
			if got := zerolog.GlobalLevel(); got != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLoggerTagsServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = saved })

	InitLogger("info")
	logger := Logger("catalog")
	logger.Info().Int("books", 3).Msg("search index rebuilt")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	if entry["service"] != ServiceName {
		t.Errorf("expected service %q, got %v", ServiceName, entry["service"])
	}
	if entry["component"] != "catalog" {
		t.Errorf("expected component catalog, got %v", entry["component"])
	}
	if entry["message"] != "search index rebuilt" {
		t.Errorf("unexpected message %v", entry["message"])
	}
}

func TestLoggerRespectsGlobalLevel(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() {
		log.Logger = saved
		InitLogger("info")
	})

	InitLogger("warn")
	logger := Logger("api")
	logger.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info line to be filtered at warn level, got %q", buf.String())
	}
}

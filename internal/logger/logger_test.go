package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter("production", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("date", "2025-03-22").Msg("dashboard computed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, expected only the info line: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["service"] != "fleet-dashboard" || entry["date"] != "2025-03-22" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
}

func TestDevelopmentLoggerIsVerbose(t *testing.T) {
	for _, env := range []string{"", "dev", "Development", "local"} {
		var buf bytes.Buffer
		log := newWithWriter(env, &buf)
		log.Debug().Msg("visible")

		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("env %q dropped a debug message", env)
		}
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Options{Level: LevelInfo, JSON: true})
	log.Debug().Msg("hidden")
	log.Info().Str("input", "notes.txt").Int("lines", 42).Msg("preamble written")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "preamble written" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["input"] != "notes.txt" {
		t.Errorf("input = %v", entry["input"])
	}
	if entry["lines"] != float64(42) {
		t.Errorf("lines = %v", entry["lines"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing time field")
	}
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Options{Level: LevelDebug, NoColor: true})
	log.Debug().Str("output", "out/notes.tex").Msg("converting")

	got := buf.String()
	for _, want := range []string{"DBG", "converting", "output=out/notes.tex"} {
		if !strings.Contains(got, want) {
			t.Errorf("console output %q should contain %q", got, want)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("NoColor output contains ANSI escapes")
	}
}

func TestNew_ErrorLevelSilencesInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Options{Level: LevelError, JSON: true})
	log.Info().Msg("converting")
	log.Warn().Msg("asset missing")
	if buf.Len() != 0 {
		t.Errorf("expected no output below error level, got %q", buf.String())
	}

	log.Error().Msg("failed")
	if !strings.Contains(buf.String(), "failed") {
		t.Error("error event not written")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: " WARN ", want: LevelWarn},
		{input: "", want: LevelInfo},
		{input: "error", want: LevelError},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

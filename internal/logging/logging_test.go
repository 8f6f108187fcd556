package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestMake_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New().FromWriter(&buf).Level(zerolog.DebugLevel).Make()
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	defer closeFn()

	log.Debug().Str("menu", "m1").Msg("saved")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON line; got %q (%v)", buf.String(), err)
	}
	if line["menu"] != "m1" || line["message"] != "saved" || line["level"] != "debug" {
		t.Fatalf("unexpected log line: %#v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Fatalf("expected a timestamp: %#v", line)
	}
}

func TestMake_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, _, _ := New().FromWriter(&buf).Level(zerolog.WarnLevel).Make()
	log.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered; got %q", buf.String())
	}
}

func TestMake_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")
	log, closeFn, err := New().FromPath(path).Console(true).Make()
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	log.Info().Msg("hello file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "hello file") {
		t.Fatalf("expected message in file; got %q", string(b))
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(""); err != nil || l != zerolog.InfoLevel {
		t.Fatalf("empty => info; got %v %v", l, err)
	}
	if l, err := ParseLevel(" WARN "); err != nil || l != zerolog.WarnLevel {
		t.Fatalf("WARN => warn; got %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

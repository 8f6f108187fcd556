package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "api,cli,tui" {
		t.Fatalf("unexpected topics: %s", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" TUI ")
	if !ok || !strings.HasPrefix(body, "# TUI") {
		t.Fatalf("expected tui doc, got ok=%v body=%q", ok, body)
	}
	for _, bad := range []string{"", "missing", "../docs", "content/tui"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

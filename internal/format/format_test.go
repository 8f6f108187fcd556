package format

import (
	"bytes"
	"strings"
	"testing"

	"navtree/internal/model"
)

func TestWrite_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": map[string]any{"id": "m1"}}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"data\":{\"id\":\"m1\"}}\n" {
		t.Fatalf("unexpected json: %q", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteEDN_KeywordsAndValues(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{
		"data": model.MenuItem{ID: "mi-1", Title: "Home", URL: "/", Type: model.ItemTypePage, CSSClass: "nav", Active: true},
		"n":    3,
		"f":    1.5,
		"none": nil,
	}
	if err := WriteEDN(&buf, v, false); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	got := buf.String()
	for _, want := range []string{`:css-class "nav"`, `:active true`, `:n 3`, `:f 1.5`, `:none nil`, `:id "mi-1"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, []any{"a", map[string]any{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	if got := buf.String(); got != "[\n  \"a\"\n  {}\n]\n" {
		t.Fatalf("unexpected pretty edn: %q", got)
	}
}

func TestKeyword(t *testing.T) {
	cases := map[string]string{"menuId": "menu-id", "htmlId": "html-id", "title": "title", "created_at": "created-at"}
	for in, want := range cases {
		if got := Keyword(in); got != want {
			t.Fatalf("Keyword(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestWriteTree(t *testing.T) {
	items := []model.MenuItem{
		{ID: "a", Title: "Home", URL: "/", Type: model.ItemTypePage, Active: true, Children: []model.MenuItem{
			{ID: "b", Title: "News", URL: "/news", Type: model.ItemTypeCategory, Active: true},
			{ID: "c", Title: "Ext", URL: "https://x", Type: model.ItemTypeCustom, Target: model.TargetBlank},
		}},
	}
	var buf bytes.Buffer
	if err := WriteTree(&buf, items, true); err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	want := "Home (/) [page] a\n" +
		"|-- News (/news) [category] b\n" +
		"`-- Ext (https://x) [custom] c {new-window,inactive}\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", got, want)
	}
}

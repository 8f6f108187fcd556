package publish

import (
	"bytes"
	"html"
	"strings"

	"navtree/internal/model"
	"navtree/internal/perm"
)

type RenderOptions struct {
	// Viewer filters items through perm.Filter. Nil renders every active item.
	Viewer          *perm.Viewer
	IncludeInactive bool
}

func visibleItems(items []model.MenuItem, opt RenderOptions) []model.MenuItem {
	if opt.Viewer != nil {
		return perm.Filter(items, *opt.Viewer)
	}
	if opt.IncludeInactive {
		return items
	}
	return activeOnly(items)
}

func activeOnly(items []model.MenuItem) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		if !it.Active {
			continue
		}
		cp := it
		cp.Children = activeOnly(it.Children)
		out = append(out, cp)
	}
	return out
}

// RenderMarkdown renders a menu as a nested markdown link list.
func RenderMarkdown(m model.Menu, opt RenderOptions) string {
	var buf bytes.Buffer
	buf.WriteString("# " + strings.TrimSpace(m.Name) + "\n\n")
	if d := strings.TrimSpace(m.Description); d != "" {
		buf.WriteString(d + "\n\n")
	}

	items := visibleItems(m.Items, opt)
	if len(items) == 0 {
		buf.WriteString("_No items._\n")
		return buf.String()
	}

	var walk func(list []model.MenuItem, depth int)
	walk = func(list []model.MenuItem, depth int) {
		for _, it := range list {
			buf.WriteString(strings.Repeat("  ", depth))
			buf.WriteString("- ")
			buf.WriteString(markdownLink(it))
			if it.OpensNewWindow() {
				buf.WriteString(" (opens in new window)")
			}
			if !it.Active {
				buf.WriteString(" _(inactive)_")
			}
			buf.WriteString("\n")
			walk(it.Children, depth+1)
		}
	}
	walk(items, 0)
	return buf.String()
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

func markdownLink(it model.MenuItem) string {
	title := markdownEscaper.Replace(strings.TrimSpace(it.Title))
	url := strings.TrimSpace(it.URL)
	if !model.SafeLinkURL(url) {
		return title
	}
	url = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29").Replace(url)
	return "[" + title + "](" + url + ")"
}

// RenderHTML renders a menu as nested <ul> lists inside a <nav> element.
func RenderHTML(m model.Menu, opt RenderOptions) string {
	var buf bytes.Buffer
	buf.WriteString(`<nav class="menu menu-` + html.EscapeString(string(m.Location)) + `" aria-label="` + html.EscapeString(strings.TrimSpace(m.Name)) + `">` + "\n")

	var walk func(list []model.MenuItem, depth int)
	walk = func(list []model.MenuItem, depth int) {
		pad := strings.Repeat("  ", depth*2+1)
		buf.WriteString(pad + "<ul>\n")
		for _, it := range list {
			buf.WriteString(pad + "  <li" + liAttrs(it) + ">")
			buf.WriteString(anchor(it))
			if len(it.Children) > 0 {
				buf.WriteString("\n")
				walk(it.Children, depth+1)
				buf.WriteString(pad + "  ")
			}
			buf.WriteString("</li>\n")
		}
		buf.WriteString(pad + "</ul>\n")
	}
	if items := visibleItems(m.Items, opt); len(items) > 0 {
		walk(items, 0)
	}
	buf.WriteString("</nav>\n")
	return buf.String()
}

func liAttrs(it model.MenuItem) string {
	var b strings.Builder
	if id := strings.TrimSpace(it.HTMLID); id != "" {
		b.WriteString(` id="` + html.EscapeString(id) + `"`)
	}
	classes := strings.Fields(it.CSSClass)
	if len(it.Children) > 0 {
		classes = append(classes, "has-children")
	}
	if len(classes) > 0 {
		b.WriteString(` class="` + html.EscapeString(strings.Join(classes, " ")) + `"`)
	}
	return b.String()
}

func anchor(it model.MenuItem) string {
	title := html.EscapeString(strings.TrimSpace(it.Title))
	url := strings.TrimSpace(it.URL)
	if !model.SafeLinkURL(url) {
		return "<span>" + title + "</span>"
	}
	var b strings.Builder
	b.WriteString(`<a href="` + html.EscapeString(url) + `"`)
	if it.Target != "" && it.Target != model.TargetSelf {
		b.WriteString(` target="` + html.EscapeString(string(it.Target)) + `"`)
	}
	rel := make([]string, 0, len(it.Rel)+1)
	for _, r := range it.Rel {
		rel = append(rel, string(r))
	}
	if it.OpensNewWindow() && !containsRel(it.Rel, model.RelNoOpener) {
		rel = append(rel, string(model.RelNoOpener))
	}
	if len(rel) > 0 {
		b.WriteString(` rel="` + html.EscapeString(strings.Join(rel, " ")) + `"`)
	}
	b.WriteString(">" + title + "</a>")
	return b.String()
}

func containsRel(xs []model.Rel, r model.Rel) bool {
	for _, x := range xs {
		if x == r {
			return true
		}
	}
	return false
}

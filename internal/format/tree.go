package format

import (
	"fmt"
	"io"
	"strings"

	"navtree/internal/model"
)

type treeGlyphs struct {
	branch, last, pipe, blank string
}

var (
	unicodeTree = treeGlyphs{branch: "├── ", last: "└── ", pipe: "│   ", blank: "    "}
	asciiTree   = treeGlyphs{branch: "|-- ", last: "`-- ", pipe: "|   ", blank: "    "}
)

// WriteTree renders items as an indented text tree, one item per line.
func WriteTree(w io.Writer, items []model.MenuItem, ascii bool) error {
	g := unicodeTree
	if ascii {
		g = asciiTree
	}
	var b strings.Builder
	var walk func(list []model.MenuItem, prefix string, top bool)
	walk = func(list []model.MenuItem, prefix string, top bool) {
		for i, it := range list {
			last := i == len(list)-1
			lead, next := g.branch, g.pipe
			if last {
				lead, next = g.last, g.blank
			}
			if top {
				lead, next = "", ""
			}
			b.WriteString(prefix)
			b.WriteString(lead)
			b.WriteString(TreeLine(it))
			b.WriteByte('\n')
			walk(it.Children, prefix+next, false)
		}
	}
	walk(items, "", true)
	_, err := io.WriteString(w, b.String())
	return err
}

// TreeLine is the one-line summary of an item used by WriteTree.
func TreeLine(it model.MenuItem) string {
	s := fmt.Sprintf("%s (%s) [%s] %s", it.Title, it.URL, it.Type, it.ID)
	var flags []string
	if it.OpensNewWindow() {
		flags = append(flags, "new-window")
	}
	if !it.Active {
		flags = append(flags, "inactive")
	}
	if len(flags) > 0 {
		s += " {" + strings.Join(flags, ",") + "}"
	}
	return s
}

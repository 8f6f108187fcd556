package editor

import (
	"sort"
	"strings"

	"navtree/internal/model"
	"navtree/internal/tree"
)

func (e *Editor) IsExpanded(id string) bool { return e.expanded[strings.TrimSpace(id)] }

// Toggle flips the expansion of id and reports the new state.
func (e *Editor) Toggle(id string) bool {
	id = strings.TrimSpace(id)
	if e.expanded[id] {
		e.Collapse(id)
		return false
	}
	e.Expand(id)
	return true
}

func (e *Editor) Expand(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	e.expanded[id] = true
}

func (e *Editor) Collapse(id string) {
	delete(e.expanded, strings.TrimSpace(id))
	e.ensureCursor()
}

// ExpandAll expands every item that has children.
func (e *Editor) ExpandAll() {
	tree.Walk(e.menu.Items, func(it *model.MenuItem, _ int, _ string) bool {
		if len(it.Children) > 0 {
			e.expanded[it.ID] = true
		}
		return true
	})
}

func (e *Editor) CollapseAll() {
	e.expanded = map[string]bool{}
	e.ensureCursor()
}

// ExpandedIDs returns the expanded ids, sorted.
func (e *Editor) ExpandedIDs() []string {
	out := make([]string, 0, len(e.expanded))
	for id := range e.expanded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// RestoreExpanded replaces the expansion set, ignoring unknown ids.
func (e *Editor) RestoreExpanded(ids []string) {
	e.expanded = map[string]bool{}
	ix := tree.NewIndex(e.menu.Items)
	for _, id := range ids {
		if ix.Has(id) {
			e.expanded[id] = true
		}
	}
	e.ensureCursor()
}

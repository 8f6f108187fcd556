package tree

import (
	"strings"

	"navtree/internal/model"
)

// Entry locates one item inside a tree.
type Entry struct {
	ID          string
	ContainerID string
	Position    int
	Depth       int
	ChildCount  int
}

// Index is an id -> location lookup table over a tree snapshot. It is not updated
// when the tree changes; build a new one from the new tree.
type Index struct {
	entries    map[string]Entry
	order      []string
	duplicates []string
}

func NewIndex(items []model.MenuItem) *Index {
	ix := &Index{entries: map[string]Entry{}}
	var walk func(list []model.MenuItem, containerID string, depth int)
	walk = func(list []model.MenuItem, containerID string, depth int) {
		for i := range list {
			id := list[i].ID
			if _, dup := ix.entries[id]; dup {
				ix.duplicates = append(ix.duplicates, id)
			} else {
				ix.entries[id] = Entry{
					ID:          id,
					ContainerID: containerID,
					Position:    i,
					Depth:       depth,
					ChildCount:  len(list[i].Children),
				}
				ix.order = append(ix.order, id)
			}
			walk(list[i].Children, id, depth+1)
		}
	}
	walk(items, model.RootContainer, 0)
	return ix
}

func (ix *Index) Lookup(id string) (Entry, bool) {
	if ix == nil {
		return Entry{}, false
	}
	e, ok := ix.entries[strings.TrimSpace(id)]
	return e, ok
}

func (ix *Index) Has(id string) bool {
	_, ok := ix.Lookup(id)
	return ok
}

func (ix *Index) Len() int { return len(ix.order) }

// IDs returns item ids in pre-order.
func (ix *Index) IDs() []string { return append([]string(nil), ix.order...) }

// Duplicates lists ids seen more than once while indexing.
func (ix *Index) Duplicates() []string { return append([]string(nil), ix.duplicates...) }

// IsAncestor reports whether ancestorID is id itself or one of its ancestors.
func (ix *Index) IsAncestor(ancestorID, id string) bool {
	ancestorID = strings.TrimSpace(ancestorID)
	cur := strings.TrimSpace(id)
	// Bounded by the entry count.
	for range len(ix.order) + 1 {
		if cur == ancestorID {
			return true
		}
		e, ok := ix.entries[cur]
		if !ok || e.ContainerID == model.RootContainer {
			return false
		}
		cur = e.ContainerID
	}
	return false
}

// Ancestors returns the ids from the root-level ancestor down to id's parent.
func (ix *Index) Ancestors(id string) []string {
	var out []string
	e, ok := ix.Lookup(id)
	for ok && e.ContainerID != model.RootContainer {
		out = append([]string{e.ContainerID}, out...)
		e, ok = ix.entries[e.ContainerID]
	}
	return out
}

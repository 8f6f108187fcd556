// Package tree implements copy-on-write operations over nested menu items.
//
// Functions that change a tree never touch the slice they are given: they work on a
// deep copy and return it, so callers can keep the previous tree as a snapshot.
package tree

import (
	"slices"
	"strings"

	"navtree/internal/model"
)

// Find returns the item with the given id and the id of the container holding it
// ("root" for top-level items). The returned pointer aliases items.
func Find(items []model.MenuItem, id string) (*model.MenuItem, string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, "", false
	}
	return find(items, id, model.RootContainer)
}

func find(items []model.MenuItem, id, containerID string) (*model.MenuItem, string, bool) {
	for i := range items {
		if items[i].ID == id {
			return &items[i], containerID, true
		}
		if n, c, ok := find(items[i].Children, id, items[i].ID); ok {
			return n, c, true
		}
	}
	return nil, "", false
}

func isRoot(containerID string) bool {
	containerID = strings.TrimSpace(containerID)
	return containerID == "" || containerID == model.RootContainer
}

// ContainerItems resolves a container id to its ordered item list.
func ContainerItems(items []model.MenuItem, containerID string) ([]model.MenuItem, bool) {
	if isRoot(containerID) {
		return items, true
	}
	n, _, ok := Find(items, containerID)
	if !ok {
		return nil, false
	}
	return n.Children, true
}

// IndexIn returns the position of id within list, or -1.
func IndexIn(list []model.MenuItem, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// editContainer clones items and applies fn to the copy of the named container.
// When fn reports false (or the container is missing) the original items are returned.
func editContainer(items []model.MenuItem, containerID string, fn func([]model.MenuItem) ([]model.MenuItem, bool)) ([]model.MenuItem, bool) {
	out := Clone(items)
	if isRoot(containerID) {
		next, ok := fn(out)
		if !ok {
			return items, false
		}
		return next, true
	}
	n, _, found := Find(out, containerID)
	if !found {
		return items, false
	}
	next, ok := fn(n.Children)
	if !ok {
		return items, false
	}
	n.Children = next
	return out, true
}

// ReplaceContainer swaps the list of the named container for list.
func ReplaceContainer(items []model.MenuItem, containerID string, list []model.MenuItem) ([]model.MenuItem, bool) {
	repl := Clone(list)
	return editContainer(items, containerID, func([]model.MenuItem) ([]model.MenuItem, bool) {
		return repl, true
	})
}

// RemoveFromContainer splices itemID out of the named container.
func RemoveFromContainer(items []model.MenuItem, itemID, containerID string) ([]model.MenuItem, model.MenuItem, bool) {
	var removed model.MenuItem
	out, ok := editContainer(items, containerID, func(list []model.MenuItem) ([]model.MenuItem, bool) {
		idx := IndexIn(list, itemID)
		if idx < 0 {
			return list, false
		}
		removed = list[idx]
		return slices.Delete(list, idx, idx+1), true
	})
	if !ok {
		return items, model.MenuItem{}, false
	}
	return out, removed, true
}

// InsertAfter places node immediately after afterID in the named container.
func InsertAfter(items []model.MenuItem, node model.MenuItem, afterID, containerID string) ([]model.MenuItem, bool) {
	node = cloneItem(node)
	return editContainer(items, containerID, func(list []model.MenuItem) ([]model.MenuItem, bool) {
		idx := IndexIn(list, afterID)
		if idx < 0 {
			return list, false
		}
		return slices.Insert(list, idx+1, node), true
	})
}

// InsertAt places node at position pos of the named container (clamped to its bounds).
func InsertAt(items []model.MenuItem, node model.MenuItem, pos int, containerID string) ([]model.MenuItem, bool) {
	node = cloneItem(node)
	return editContainer(items, containerID, func(list []model.MenuItem) ([]model.MenuItem, bool) {
		pos = max(0, min(pos, len(list)))
		return slices.Insert(list, pos, node), true
	})
}

// InsertChild appends node to the children of parentID, or to the root list.
func InsertChild(items []model.MenuItem, node model.MenuItem, parentID string) ([]model.MenuItem, bool) {
	node = cloneItem(node)
	return editContainer(items, parentID, func(list []model.MenuItem) ([]model.MenuItem, bool) {
		return append(list, node), true
	})
}

// Reorder moves the element at from to position to, shifting the elements between
// them by one. Out-of-range indices return an unchanged copy.
func Reorder(list []model.MenuItem, from, to int) []model.MenuItem {
	out := Clone(list)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	it := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, it)
}

// Clone deep-copies items, including metadata slices.
func Clone(items []model.MenuItem) []model.MenuItem {
	if items == nil {
		return nil
	}
	out := make([]model.MenuItem, len(items))
	for i := range items {
		out[i] = cloneItem(items[i])
	}
	return out
}

func cloneItem(it model.MenuItem) model.MenuItem {
	it.Rel = slices.Clone(it.Rel)
	it.Visibility = slices.Clone(it.Visibility)
	it.Roles = slices.Clone(it.Roles)
	it.Children = Clone(it.Children)
	return it
}

// CloneMenu returns a menu whose item tree shares nothing with m.
func CloneMenu(m model.Menu) model.Menu {
	m.Items = Clone(m.Items)
	return m
}

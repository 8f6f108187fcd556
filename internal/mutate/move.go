package mutate

import (
	"strings"

	"navtree/internal/model"
	"navtree/internal/tree"
)

// Move reconciles a drop of activeID onto overID into a new menu.
//
// When both items share a container the active item takes over's position (array
// move semantics). Otherwise the active item, with its subtree, is placed right after
// over in over's container. The removal and insertion are computed on one snapshot
// and the input menu is never modified, so a failed move leaves nothing half-applied.
func Move(m model.Menu, activeID, overID string) (Result, error) {
	activeID = strings.TrimSpace(activeID)
	overID = strings.TrimSpace(overID)
	if activeID == "" || activeID == overID {
		return unchanged(m, activeID), nil
	}
	if overID == "" {
		return unchanged(m, activeID), nil
	}

	ix := tree.NewIndex(m.Items)
	a, ok := ix.Lookup(activeID)
	if !ok {
		return unchanged(m, activeID), NotFoundError{Kind: "item", ID: activeID}
	}
	o, ok := ix.Lookup(overID)
	if !ok {
		return unchanged(m, activeID), NotFoundError{Kind: "item", ID: overID}
	}

	if a.ContainerID == o.ContainerID {
		if a.Position == o.Position {
			return unchanged(m, activeID), nil
		}
		list, _ := tree.ContainerItems(m.Items, a.ContainerID)
		next, ok := tree.ReplaceContainer(m.Items, a.ContainerID, tree.Reorder(list, a.Position, o.Position))
		if !ok {
			return unchanged(m, activeID), NotFoundError{Kind: "container", ID: a.ContainerID}
		}
		out := m
		out.Items = next
		return Result{Menu: out, Outcome: OutcomeReordered, ItemID: activeID, From: a.ContainerID, To: a.ContainerID}, nil
	}

	if ix.IsAncestor(activeID, overID) {
		return unchanged(m, activeID), ErrCycle
	}

	snapshot := tree.Clone(m.Items)
	without, node, ok := tree.RemoveFromContainer(snapshot, activeID, a.ContainerID)
	if !ok {
		return unchanged(m, activeID), NotFoundError{Kind: "item", ID: activeID}
	}
	next, ok := tree.InsertAfter(without, node, overID, o.ContainerID)
	if !ok {
		return unchanged(m, activeID), NotFoundError{Kind: "item", ID: overID}
	}
	out := m
	out.Items = next
	return Result{Menu: out, Outcome: OutcomeReparented, ItemID: activeID, From: a.ContainerID, To: o.ContainerID}, nil
}

// Indent makes the item the last child of its previous sibling.
func Indent(m model.Menu, id string) (Result, error) {
	ix := tree.NewIndex(m.Items)
	e, ok := ix.Lookup(id)
	if !ok {
		return unchanged(m, id), NotFoundError{Kind: "item", ID: id}
	}
	if e.Position == 0 {
		return unchanged(m, e.ID), nil
	}
	list, _ := tree.ContainerItems(m.Items, e.ContainerID)
	parentID := list[e.Position-1].ID

	without, node, ok := tree.RemoveFromContainer(m.Items, e.ID, e.ContainerID)
	if !ok {
		return unchanged(m, e.ID), NotFoundError{Kind: "item", ID: e.ID}
	}
	next, ok := tree.InsertChild(without, node, parentID)
	if !ok {
		return unchanged(m, e.ID), NotFoundError{Kind: "item", ID: parentID}
	}
	out := m
	out.Items = next
	return Result{Menu: out, Outcome: OutcomeReparented, ItemID: e.ID, From: e.ContainerID, To: parentID}, nil
}

// Outdent moves the item out of its parent, right after the parent.
func Outdent(m model.Menu, id string) (Result, error) {
	ix := tree.NewIndex(m.Items)
	e, ok := ix.Lookup(id)
	if !ok {
		return unchanged(m, id), NotFoundError{Kind: "item", ID: id}
	}
	if e.ContainerID == model.RootContainer {
		return unchanged(m, e.ID), nil
	}
	parent, _ := ix.Lookup(e.ContainerID)

	without, node, ok := tree.RemoveFromContainer(m.Items, e.ID, e.ContainerID)
	if !ok {
		return unchanged(m, e.ID), NotFoundError{Kind: "item", ID: e.ID}
	}
	next, ok := tree.InsertAfter(without, node, parent.ID, parent.ContainerID)
	if !ok {
		return unchanged(m, e.ID), NotFoundError{Kind: "item", ID: parent.ID}
	}
	out := m
	out.Items = next
	return Result{Menu: out, Outcome: OutcomeReparented, ItemID: e.ID, From: e.ContainerID, To: parent.ContainerID}, nil
}

// MoveToRoot appends the item (with its subtree) to the top-level list.
func MoveToRoot(m model.Menu, id string) (Result, error) {
	ix := tree.NewIndex(m.Items)
	e, ok := ix.Lookup(id)
	if !ok {
		return unchanged(m, id), NotFoundError{Kind: "item", ID: id}
	}
	if e.ContainerID == model.RootContainer {
		return unchanged(m, e.ID), nil
	}
	without, node, ok := tree.RemoveFromContainer(m.Items, e.ID, e.ContainerID)
	if !ok {
		return unchanged(m, e.ID), NotFoundError{Kind: "item", ID: e.ID}
	}
	next, _ := tree.InsertChild(without, node, model.RootContainer)
	out := m
	out.Items = next
	return Result{Menu: out, Outcome: OutcomeReparented, ItemID: e.ID, From: e.ContainerID, To: model.RootContainer}, nil
}

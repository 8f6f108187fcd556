package editor

import (
	"slices"

	"navtree/internal/mutate"
	"navtree/internal/tree"
)

// RequestDelete asks for confirmation before deleting id and its subtree.
func (e *Editor) RequestDelete(id string) error {
	it, _, ok := e.Lookup(id)
	if !ok {
		return mutate.NotFoundError{Kind: "item", ID: id}
	}
	e.pendingDelete = it.ID
	return nil
}

// PendingDelete returns the item awaiting confirmation and the size of its subtree.
func (e *Editor) PendingDelete() (string, int, bool) {
	if e.pendingDelete == "" {
		return "", 0, false
	}
	return e.pendingDelete, len(tree.Subtree(e.menu.Items, e.pendingDelete)), true
}

func (e *Editor) CancelDelete() { e.pendingDelete = "" }

// ConfirmDelete removes the pending item with its subtree. The cursor moves to the
// row above the deleted item, or the row below when it was first.
func (e *Editor) ConfirmDelete() (mutate.Result, error) {
	id := e.pendingDelete
	e.pendingDelete = ""
	if id == "" {
		return mutate.Result{Menu: e.menu}, ErrNoPendingDelete
	}

	rows := e.Rows()
	next := ""
	if i := tree.RowIndex(rows, id); i > 0 {
		next = rows[i-1].ID()
	} else if i == 0 {
		sub := map[string]bool{}
		for _, s := range tree.Subtree(e.menu.Items, id) {
			sub[s] = true
		}
		for _, r := range rows[1:] {
			if !sub[r.ID()] {
				next = r.ID()
				break
			}
		}
	}

	res, err := mutate.DeleteItem(e.menu, id)
	if err != nil {
		return res, err
	}
	e.commit("delete", res)
	for _, rid := range res.RemovedIDs {
		delete(e.expanded, rid)
	}
	if slices.Contains(res.RemovedIDs, e.cursor) {
		e.cursor = next
	}
	e.ensureCursor()
	return res, nil
}

// Package editor holds one menu and the view state around it: which items are
// expanded, which row is selected, and the pending form or delete confirmation.
//
// Every change to the tree goes through package mutate and replaces the menu
// wholesale. View state is keyed by item id so it survives reorders and moves.
package editor

import (
	"errors"
	"strings"

	"navtree/internal/drag"
	"navtree/internal/metric"
	"navtree/internal/model"
	"navtree/internal/mutate"
	"navtree/internal/store"
	"navtree/internal/tree"

	"github.com/rs/zerolog"
)

var (
	ErrNoForm          = errors.New("no form is open")
	ErrNoPendingDelete = errors.New("no delete is pending")
)

// Change is one applied mutation, kept until the menu is saved.
type Change struct {
	Op     string
	Result mutate.Result
}

type Editor struct {
	menu     model.Menu
	expanded map[string]bool
	cursor   string

	form          *Form
	pendingDelete string

	dirty   bool
	changes []Change

	newID   func() string
	log     zerolog.Logger
	metrics *metric.Mutations
}

type Option func(*Editor)

// WithIDs overrides how new item ids are minted.
func WithIDs(fn func() string) Option {
	return func(e *Editor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

func WithMetrics(m *metric.Mutations) Option {
	return func(e *Editor) { e.metrics = m }
}

func New(m model.Menu, opts ...Option) *Editor {
	e := &Editor{
		expanded: map[string]bool{},
		newID:    store.NewItemID,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Load(m)
	return e
}

// Load replaces the menu, dropping view state for ids that no longer exist.
func (e *Editor) Load(m model.Menu) {
	e.menu = tree.CloneMenu(m)
	e.prune()
	e.form = nil
	e.pendingDelete = ""
	e.dirty = false
	e.changes = nil
	e.ensureCursor()
}

// Menu returns a copy of the current menu.
func (e *Editor) Menu() model.Menu { return tree.CloneMenu(e.menu) }

func (e *Editor) Dirty() bool { return e.dirty }

// MarkSaved clears the dirty flag and returns the changes applied since the last
// save, oldest first.
func (e *Editor) MarkSaved(saved model.Menu) []Change {
	out := e.changes
	e.changes = nil
	e.dirty = false
	e.menu.CreatedAt = saved.CreatedAt
	e.menu.UpdatedAt = saved.UpdatedAt
	return out
}

// Rows flattens the visible part of the tree.
func (e *Editor) Rows() []tree.Row {
	return tree.Flatten(e.menu.Items, e.IsExpanded)
}

// Lookup satisfies drag.Lookup.
func (e *Editor) Lookup(id string) (model.MenuItem, string, bool) {
	n, containerID, ok := tree.Find(e.menu.Items, id)
	if !ok {
		return model.MenuItem{}, "", false
	}
	return tree.Clone([]model.MenuItem{*n})[0], containerID, true
}

func (e *Editor) commit(op string, res mutate.Result) {
	e.metrics.Record(op, string(res.Outcome))
	if !res.Changed() {
		return
	}
	e.menu = res.Menu
	e.dirty = true
	e.changes = append(e.changes, Change{Op: op, Result: res})
	e.log.Debug().Str("op", op).Str("outcome", string(res.Outcome)).Str("item", res.ItemID).Msg("menu mutated")
}

// ApplyMove runs a drag or keyboard command against the tree and returns the flash
// message for it. Commands naming items that no longer exist are dropped silently.
func (e *Editor) ApplyMove(cmd drag.Command) (string, error) {
	var (
		res mutate.Result
		err error
	)
	switch cmd.Kind {
	case drag.KindIndent:
		res, err = mutate.Indent(e.menu, cmd.ActiveID)
	case drag.KindOutdent:
		res, err = mutate.Outdent(e.menu, cmd.ActiveID)
	default:
		res, err = mutate.Move(e.menu, cmd.ActiveID, cmd.OverID)
	}
	if err != nil {
		if mutate.IsNotFound(err) {
			e.log.Debug().Err(err).Str("active", cmd.ActiveID).Str("over", cmd.OverID).Msg("move target vanished")
			return "", nil
		}
		e.metrics.Record(string(cmd.Kind), "rejected")
		return "", err
	}
	e.commit(string(cmd.Kind), res)
	if !res.Changed() {
		return "", nil
	}
	if res.Outcome == mutate.OutcomeReparented {
		e.revealItem(res.ItemID)
	}
	e.cursor = res.ItemID
	return res.Message(), nil
}

// revealItem expands every ancestor of id.
func (e *Editor) revealItem(id string) {
	for _, a := range tree.NewIndex(e.menu.Items).Ancestors(id) {
		e.expanded[a] = true
	}
}

// Selected returns the item under the cursor.
func (e *Editor) Selected() (model.MenuItem, bool) {
	it, _, ok := e.Lookup(e.cursor)
	return it, ok
}

func (e *Editor) Cursor() string { return e.cursor }

// SetCursor selects id when it is a visible row.
func (e *Editor) SetCursor(id string) bool {
	id = strings.TrimSpace(id)
	if tree.RowIndex(e.Rows(), id) < 0 {
		return false
	}
	e.cursor = id
	return true
}

// MoveCursor moves the selection by delta visible rows, clamped to the list.
func (e *Editor) MoveCursor(delta int) {
	rows := e.Rows()
	if len(rows) == 0 {
		e.cursor = ""
		return
	}
	i := tree.RowIndex(rows, e.cursor)
	if i < 0 {
		i = 0
	} else {
		i += delta
	}
	i = max(0, min(i, len(rows)-1))
	e.cursor = rows[i].ID()
}

// ensureCursor keeps the cursor on a visible row, falling back to the nearest
// visible ancestor and then to the first row.
func (e *Editor) ensureCursor() {
	rows := e.Rows()
	if tree.RowIndex(rows, e.cursor) >= 0 {
		return
	}
	ix := tree.NewIndex(e.menu.Items)
	anc := ix.Ancestors(e.cursor)
	for i := len(anc) - 1; i >= 0; i-- {
		if tree.RowIndex(rows, anc[i]) >= 0 {
			e.cursor = anc[i]
			return
		}
	}
	if len(rows) > 0 {
		e.cursor = rows[0].ID()
		return
	}
	e.cursor = ""
}

func (e *Editor) prune() {
	ix := tree.NewIndex(e.menu.Items)
	for id := range e.expanded {
		if !ix.Has(id) {
			delete(e.expanded, id)
		}
	}
}

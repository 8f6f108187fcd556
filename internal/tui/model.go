package tui

import (
	"navtree/internal/drag"
	"navtree/internal/editor"
	"navtree/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/rs/zerolog"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalConfirmDelete
	modalConfirmQuit
	modalPager
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type appModel struct {
	st     store.Store
	log    zerolog.Logger
	ed     *editor.Editor
	drag   *drag.Session
	menuID string
	state  *store.TUIState

	width  int
	height int

	// rows renders the visible tree; the editor owns the cursor and rows follows it.
	rows list.Model

	modal   modalKind
	confirm confirmModalFocus
	form    itemForm
	pager   pager

	// dropOverID is the row under the pointer while a drag is in progress.
	dropOverID string

	flash    string
	flashErr bool
}

func (m *appModel) setFlash(msg string) {
	m.flash = msg
	m.flashErr = false
}

func (m *appModel) setError(err error) {
	if err == nil {
		return
	}
	m.flash = err.Error()
	m.flashErr = true
}

func (m *appModel) clearFlash() {
	m.flash = ""
	m.flashErr = false
}

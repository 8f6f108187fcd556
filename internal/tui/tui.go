// Package tui is the interactive terminal editor for a single menu.
package tui

import (
	"navtree/internal/drag"
	"navtree/internal/editor"
	"navtree/internal/metric"
	"navtree/internal/model"
	"navtree/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type Options struct {
	Store   store.Store
	Menu    model.Menu
	Log     zerolog.Logger
	Metrics *metric.Mutations

	// NewItemID overrides id minting for added items.
	NewItemID func() string
}

func Run(opts Options) error {
	applyGlyphPreference()
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if fm, ok := final.(appModel); ok {
		fm.persistState()
	}
	return err
}

func newAppModel(opts Options) appModel {
	ed := editor.New(opts.Menu,
		editor.WithIDs(opts.NewItemID),
		editor.WithLogger(opts.Log),
		editor.WithMetrics(opts.Metrics),
	)
	m := appModel{
		st:      opts.Store,
		log:     opts.Log,
		ed:      ed,
		menuID:  opts.Menu.ID,
		width:   80,
		height:  24,
		drag:    drag.NewSession(ed.Lookup),
		confirm: confirmFocusCancel,
		rows:    newRowList(),
	}
	m.restoreState()
	m.syncList()
	return m
}

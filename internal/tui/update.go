package tui

import (
	"context"
	"errors"
	"fmt"

	"navtree/internal/drag"
	"navtree/internal/model"
	"navtree/internal/mutate"
	"navtree/internal/tree"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

// Update runs against rows synced to the current state, so mouse positions
// resolve against what was last drawn, and resyncs after the change.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.syncList()
	next, cmd := m.update(msg)
	if nm, ok := next.(appModel); ok {
		nm.syncList()
		return nm, cmd
	}
	return next, cmd
}

func (m appModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.modal {
		case modalForm:
			return m.updateForm(msg)
		case modalConfirmDelete, modalConfirmQuit:
			return m.updateConfirm(msg)
		case modalPager:
			return m.updatePager(msg)
		}
		return m.updateList(msg)
	case tea.MouseMsg:
		if m.modal != modalNone {
			return m, nil
		}
		return m.updateMouse(msg)
	}
	if m.modal == modalForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m appModel) currentRow() (tree.Row, bool) {
	rows := m.ed.Rows()
	i := tree.RowIndex(rows, m.ed.Cursor())
	if i < 0 {
		return tree.Row{}, false
	}
	return rows[i], true
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.ed.Dirty() {
			m.modal = modalConfirmQuit
			m.confirm = confirmFocusCancel
			return m, nil
		}
		return m, tea.Quit
	case "esc":
		if m.drag.Pressed() || m.drag.Dragging() {
			m.drag.Cancel()
			m.dropOverID = ""
		}
		m.clearFlash()
	case "up", "k":
		m.ed.MoveCursor(-1)
	case "down", "j":
		m.ed.MoveCursor(1)
	case "pgup":
		m.ed.MoveCursor(-m.rows.Paginator.PerPage)
	case "pgdown":
		m.ed.MoveCursor(m.rows.Paginator.PerPage)
	case "home", "g":
		m.ed.MoveCursor(-len(m.ed.Rows()))
	case "end", "G":
		m.ed.MoveCursor(len(m.ed.Rows()))
	case "left", "h":
		row, ok := m.currentRow()
		if !ok {
			break
		}
		if row.HasChildren && row.Expanded {
			m.ed.Collapse(row.ID())
		} else if row.ContainerID != model.RootContainer {
			m.ed.SetCursor(row.ContainerID)
		}
	case "right", "l":
		row, ok := m.currentRow()
		if !ok || !row.HasChildren {
			break
		}
		if !row.Expanded {
			m.ed.Expand(row.ID())
		} else {
			m.ed.MoveCursor(1)
		}
	case " ", "enter":
		if row, ok := m.currentRow(); ok && row.HasChildren {
			m.ed.Toggle(row.ID())
		}
	case "?":
		m.openHelp()
	case "p":
		m.openPreview()
	case "a":
		m.openAdd(m.ed.Cursor())
	case "A":
		m.openAdd("")
	case "e":
		if f, err := m.ed.BeginEdit(m.ed.Cursor()); err == nil {
			m.form = newItemForm(f)
			m.modal = modalForm
		}
	case "d", "delete":
		if err := m.ed.RequestDelete(m.ed.Cursor()); err == nil {
			m.modal = modalConfirmDelete
			m.confirm = confirmFocusCancel
		}
	case "alt+up", "K":
		if cmd, ok := drag.KeyboardMove(m.ed.Rows(), m.ed.Cursor(), drag.Up); ok {
			m.applyMove(cmd)
		}
	case "alt+down", "J":
		if cmd, ok := drag.KeyboardMove(m.ed.Rows(), m.ed.Cursor(), drag.Down); ok {
			m.applyMove(cmd)
		}
	case "tab":
		if id := m.ed.Cursor(); id != "" {
			m.applyMove(drag.IndentCommand(id))
		}
	case "shift+tab":
		if id := m.ed.Cursor(); id != "" {
			m.applyMove(drag.OutdentCommand(id))
		}
	case "E":
		m.ed.ExpandAll()
	case "C":
		m.ed.CollapseAll()
	case "s", "ctrl+s":
		m.save()
	}
	return m, nil
}

func (m *appModel) openAdd(parentID string) {
	f, err := m.ed.BeginAdd(parentID)
	if err != nil {
		m.setError(err)
		return
	}
	m.form = newItemForm(f)
	m.modal = modalForm
}

func (m *appModel) applyMove(cmd drag.Command) {
	msg, err := m.ed.ApplyMove(cmd)
	if err != nil {
		m.setError(err)
		return
	}
	if msg != "" {
		m.setFlash(msg)
	}
}

func (m *appModel) save() {
	if !m.ed.Dirty() {
		m.setFlash("No changes to save")
		return
	}
	ctx := context.Background()
	saved, err := m.st.SaveMenu(ctx, m.ed.Menu())
	if err != nil {
		m.setError(fmt.Errorf("save failed: %w", err))
		return
	}
	changes := m.ed.MarkSaved(saved)
	for _, c := range changes {
		if err := m.st.AppendEvent(ctx, "item."+c.Op, saved.ID, c.Result.Payload()); err != nil {
			m.log.Warn().Err(err).Str("menu", saved.ID).Str("op", c.Op).Msg("event log append failed")
		}
	}
	m.persistState()
	m.setFlash(fmt.Sprintf("Saved %d change(s)", len(changes)))
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.ed.CancelForm()
		m.modal = modalNone
		return m, nil
	case "tab", "down":
		m.form.focusField(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.focusField(m.form.focus - 1)
		return m, nil
	case "enter":
		in, fieldErrs := m.form.itemInput()
		if len(fieldErrs) > 0 {
			m.form.errors = fieldErrs
			return m, nil
		}
		res, err := m.ed.Submit(in)
		if err != nil {
			var ve mutate.ValidationError
			if errors.As(err, &ve) {
				m.form.errors = ve.Fields
				return m, nil
			}
			m.modal = modalNone
			m.setError(err)
			return m, nil
		}
		m.modal = modalNone
		m.setFlash(res.Message())
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirm == confirmFocusConfirm {
			m.confirm = confirmFocusCancel
		} else {
			m.confirm = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.resolveConfirm(true)
	case "n", "esc", "ctrl+g":
		return m.resolveConfirm(false)
	case "enter":
		return m.resolveConfirm(m.confirm == confirmFocusConfirm)
	}
	return m, nil
}

func (m appModel) resolveConfirm(ok bool) (tea.Model, tea.Cmd) {
	kind := m.modal
	m.modal = modalNone
	switch kind {
	case modalConfirmDelete:
		if !ok {
			m.ed.CancelDelete()
			return m, nil
		}
		res, err := m.ed.ConfirmDelete()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setFlash(res.Message())
	case modalConfirmQuit:
		if ok {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ed.MoveCursor(-1)
		case tea.MouseButtonWheelDown:
			m.ed.MoveCursor(1)
		case tea.MouseButtonLeft:
			row, ok := m.rowAt(msg.Y)
			if !ok {
				m.drag.Cancel()
				break
			}
			m.ed.SetCursor(row.ID())
			if row.HasChildren && m.onTwisty(row, msg.X) {
				m.ed.Toggle(row.ID())
				break
			}
			m.drag.Press(row.ID(), msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if st, ok := m.drag.Motion(msg.X, msg.Y); ok {
			m.setFlash("Moving " + st.Preview.Title)
		}
		if m.drag.Dragging() {
			m.dropOverID = ""
			if row, ok := m.rowAt(msg.Y); ok {
				m.dropOverID = row.ID()
			}
		}
	case tea.MouseActionRelease:
		if m.drag.Dragging() {
			m.clearFlash()
		}
		row, ok := m.rowAt(msg.Y)
		cmd, drop := m.drag.Release(row.ID(), ok)
		m.dropOverID = ""
		if drop {
			m.applyMove(cmd)
		}
	}
	return m, nil
}

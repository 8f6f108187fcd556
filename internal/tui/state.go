package tui

import "navtree/internal/store"

func (m *appModel) restoreState() {
	st, err := m.st.LoadTUIState()
	if err != nil || st == nil {
		st = &store.TUIState{Version: 1}
	}
	m.state = st
	if ids := st.Expanded[m.menuID]; len(ids) > 0 {
		m.ed.RestoreExpanded(ids)
	}
	if id := st.Cursor[m.menuID]; id != "" {
		_ = m.ed.SetCursor(id)
	}
}

// persistState writes expansion and selection for the current menu. Failures are
// logged and otherwise ignored.
func (m appModel) persistState() {
	if m.state == nil || m.menuID == "" {
		return
	}
	m.state.LastMenuID = m.menuID
	m.state.SetExpanded(m.menuID, m.ed.ExpandedIDs())
	if m.state.Cursor == nil {
		m.state.Cursor = map[string]string{}
	}
	if c := m.ed.Cursor(); c != "" {
		m.state.Cursor[m.menuID] = c
	} else {
		delete(m.state.Cursor, m.menuID)
	}
	if err := m.st.SaveTUIState(m.state); err != nil {
		m.log.Warn().Err(err).Msg("saving tui state failed")
	}
}

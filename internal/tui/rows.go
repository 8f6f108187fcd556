package tui

import (
	"fmt"
	"io"
	"strings"

	"navtree/internal/tree"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// rowItem is one visible tree row in the item list.
type rowItem struct {
	row tree.Row
}

func (i rowItem) FilterValue() string { return i.row.Item.Title }

// rowDelegate draws tree rows on a single line. The drag fields are refreshed on
// every sync so the lifted row and the drop target render differently.
type rowDelegate struct {
	liftedID string
	dropID   string
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderRow(it.row, m.Width(), index == m.Index()))
}

func (d rowDelegate) renderRow(row tree.Row, width int, focused bool) string {
	it := row.Item
	isLifted := d.liftedID != "" && d.liftedID == it.ID
	isDrop := d.liftedID != "" && d.dropID == it.ID && !isLifted

	marker := " "
	if isDrop {
		marker = pick("→", ">")
	}
	twisty := strings.Repeat(" ", xansi.StringWidth(glyphTwistyExpanded()))
	if row.HasChildren {
		twisty = glyphTwistyCollapsed()
		if row.Expanded {
			twisty = glyphTwistyExpanded()
		}
	}
	head := marker + glyphHandle() + " " + strings.Repeat("  ", row.Depth) + twisty + " " + glyphItemType(it.Type) + " "
	if ic := glyphIcon(it.Icon); ic != "" {
		head += ic + " "
	}

	tail := "  " + it.URL
	if it.OpensNewWindow() {
		tail += " " + glyphNewWindow()
	}
	if !it.Active {
		tail += "  (inactive)"
	}

	switch {
	case focused && !isLifted:
		return styleSelected().Width(max(1, width)).Render(truncate(head+it.Title+tail, width))
	case isLifted:
		return styleMuted().Render(truncate(head+it.Title+tail, width))
	case isDrop:
		return styleDropTarget().Render(truncate(head+it.Title+tail, width))
	}
	line := head + it.Title + styleMuted().Render(tail)
	if !it.Active {
		line = faintIfDark(lipgloss.NewStyle()).Render(head+it.Title) + styleMuted().Render(tail)
	}
	return truncate(line, width)
}

func newRowList() list.Model {
	l := list.New([]list.Item{}, rowDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetStatusBarItemName("item", "items")
	return l
}

// syncList rebuilds the item list from the editor's visible rows and selects the
// cursor row, which also turns the paginator to its page.
func (m *appModel) syncList() {
	rows := m.ed.Rows()
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, rowItem{row: r})
	}
	d := rowDelegate{}
	if st, ok := m.drag.Active(); ok {
		d.liftedID = st.ActiveID
		d.dropID = m.dropOverID
	}
	m.rows.SetDelegate(d)
	m.rows.SetSize(max(1, m.width), m.listHeight())
	m.rows.SetItems(items)
	if i := tree.RowIndex(rows, m.ed.Cursor()); i >= 0 {
		m.rows.Select(i)
	}
}

// rowAt maps a screen line to the row drawn on it on the current page.
func (m appModel) rowAt(y int) (tree.Row, bool) {
	top := m.listTop()
	if y < top || y >= top+m.rows.Paginator.PerPage {
		return tree.Row{}, false
	}
	i := m.rows.Paginator.Page*m.rows.Paginator.PerPage + (y - top)
	items := m.rows.Items()
	if i < 0 || i >= len(items) {
		return tree.Row{}, false
	}
	it, ok := items[i].(rowItem)
	if !ok {
		return tree.Row{}, false
	}
	return it.row, true
}

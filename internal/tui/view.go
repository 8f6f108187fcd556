package tui

import (
	"fmt"
	"strings"

	"navtree/internal/tree"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const footerHeight = 2

const helpText = "j/k select  h/l fold  a/A add  e edit  d delete  J/K move  tab/S-tab indent  E/C all  p preview  s save  ? help  q quit"

func (m appModel) View() string {
	if m.modal != modalNone {
		return m.placeCentered(m.modalView())
	}
	m.syncList()

	lines := m.headerLines()
	h := m.listHeight()
	if len(m.rows.Items()) == 0 {
		lines = append(lines, styleMuted().Render("  No items yet. Press A to add one."))
		for i := 1; i < h; i++ {
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, m.rows.View())
	}
	lines = append(lines, m.statusLine(), styleMuted().Render(truncate(helpText, m.width)))
	return strings.Join(lines, "\n")
}

// headerLines is the fixed block above the item list. The list starts right below
// it, so mouse rows are resolved against its length.
func (m appModel) headerLines() []string {
	menu := m.ed.Menu()
	title := styleTitle().Render(menu.Name)
	if m.ed.Dirty() {
		title += styleMuted().Render(" *")
	}
	meta := styleMuted().Render(fmt.Sprintf("  %s · %s · %s", menu.Location, menu.Type, menu.Status))
	lines := []string{truncate(title+meta, m.width)}
	if desc := renderMarkdown(menu.Description, m.width-2); desc != "" {
		lines = append(lines, strings.Split(desc, "\n")...)
	}
	lines = append(lines, styleMuted().Render(strings.Repeat(glyphHRule(), max(1, m.width))))
	return lines
}

func (m appModel) listTop() int { return len(m.headerLines()) }

func (m appModel) listHeight() int {
	return max(1, m.height-m.listTop()-footerHeight)
}

// rowPrefixWidth is the width of marker, handle and indentation before the twisty.
func rowPrefixWidth(depth int) int {
	return 1 + xansi.StringWidth(glyphHandle()) + 1 + 2*depth
}

func (m appModel) onTwisty(row tree.Row, x int) bool {
	start := rowPrefixWidth(row.Depth)
	return x >= start && x < start+xansi.StringWidth(glyphTwistyExpanded())
}

func (m appModel) statusLine() string {
	if st, ok := m.drag.Active(); ok {
		target := "release over a row to drop, esc to cancel"
		if m.dropOverID != "" {
			if it, _, found := m.ed.Lookup(m.dropOverID); found {
				target = "drop on " + it.Title
			}
		}
		return truncate(styleMuted().Render("Moving "+st.Preview.Title+": "+target), m.width)
	}
	if m.flash == "" {
		return ""
	}
	return truncate(styleFlash(m.flashErr).Render(m.flash), m.width)
}

func (m appModel) modalView() string {
	switch m.modal {
	case modalForm:
		return m.formView()
	case modalConfirmDelete:
		id, n, _ := m.ed.PendingDelete()
		title := id
		if it, _, ok := m.ed.Lookup(id); ok {
			title = it.Title
		}
		body := fmt.Sprintf("Delete %q?", title)
		if n > 1 {
			body = fmt.Sprintf("Delete %q and its %d nested item(s)?", title, n-1)
		}
		return renderConfirmModal(m.width, "Delete menu item", body, "Delete", "Cancel", m.confirm)
	case modalConfirmQuit:
		return renderConfirmModal(m.width, "Unsaved changes", "Quit without saving?", "Quit", "Stay", m.confirm)
	case modalPager:
		return m.pagerView()
	}
	return ""
}

func (m appModel) formView() string {
	bodyW := modalBodyWidth(m.width)
	const labelW = 12
	lines := make([]string, 0, len(m.form.fields)*2+2)
	for i, f := range m.form.fields {
		label := lipgloss.NewStyle().Width(labelW).Render(f.label)
		if i == m.form.focus {
			label = lipgloss.NewStyle().Width(labelW).Bold(true).Foreground(colorAccent).Render(f.label)
		}
		lines = append(lines, label+renderInputLine(bodyW-labelW, f.input.View()))
		if msg, ok := m.form.errors[f.key]; ok {
			lines = append(lines, strings.Repeat(" ", labelW)+styleError().Render(msg))
		}
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render("tab/↑↓: field   enter: save   esc: cancel"))
	return renderModalBox(m.width, m.form.title, strings.Join(lines, "\n"))
}

func (m appModel) placeCentered(s string) string {
	return lipgloss.Place(max(1, m.width), max(1, m.height), lipgloss.Center, lipgloss.Center, s)
}

func truncate(s string, width int) string {
	if width <= 0 || xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, "…")
}

package tui

import (
	"strings"

	"navtree/internal/docs"
	"navtree/internal/publish"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// pager is a read-only modal showing rendered markdown.
type pager struct {
	title string
	view  viewport.Model
}

func (m *appModel) openPager(title, md string) {
	w := modalBodyWidth(m.width)
	body := renderMarkdown(md, w)
	if body == "" {
		body = md
	}
	vp := viewport.New(w, m.pagerHeight())
	vp.SetContent(strings.TrimRight(body, "\n"))
	m.pager = pager{title: title, view: vp}
	m.modal = modalPager
}

func (m *appModel) openHelp() {
	md, ok := docs.Get("tui")
	if !ok {
		md = helpText
	}
	m.openPager("Help", md)
}

func (m *appModel) openPreview() {
	m.openPager("Preview", publish.RenderMarkdown(m.ed.Menu(), publish.RenderOptions{IncludeInactive: true}))
}

func (m appModel) pagerHeight() int {
	return max(3, m.height-8)
}

func (m appModel) updatePager(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?", "p", "enter", "ctrl+c":
		m.modal = modalNone
	case "down", "j":
		m.pager.view.LineDown(1)
	case "up", "k":
		m.pager.view.LineUp(1)
	case "pgdown", " ":
		m.pager.view.ViewDown()
	case "pgup":
		m.pager.view.ViewUp()
	case "home", "g":
		m.pager.view.GotoTop()
	case "end", "G":
		m.pager.view.GotoBottom()
	}
	return m, nil
}

func (m appModel) pagerView() string {
	footer := "esc: close"
	if m.pager.view.TotalLineCount() > m.pager.view.Height {
		footer = "j/k: scroll   esc: close"
	}
	content := m.pager.view.View() + "\n\n" + styleMuted().Render(footer)
	return renderModalBox(m.width, m.pager.title, content)
}

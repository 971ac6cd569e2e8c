package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timeblessed/catalog"
)

// DrawerModel lists every app visible right now.
type DrawerModel struct {
	Search    textinput.Model
	searching bool
	apps      []catalog.App
	filtered  []catalog.App
	favs      map[string]bool
	Cursor    int
	Hidden    int
	Width     int
	Height    int
	help      help.Model
}

func NewDrawerModel() DrawerModel {
	ti := textinput.New()
	ti.Placeholder = "Search apps"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.PromptStyle = focusedStyle
	return DrawerModel{Search: ti, favs: map[string]bool{}, help: help.New()}
}

func (m *DrawerModel) SetApps(apps []catalog.App, hidden int, favs map[string]bool) {
	m.apps = apps
	m.Hidden = hidden
	m.favs = favs
	m.filter()
}

func (m *DrawerModel) filter() {
	m.filtered = catalog.Search(m.apps, m.Search.Value())
	if m.Cursor >= len(m.filtered) {
		m.Cursor = max(0, len(m.filtered)-1)
	}
}

func (m DrawerModel) Selected() (catalog.App, bool) {
	if len(m.filtered) == 0 {
		return catalog.App{}, false
	}
	return m.filtered[m.Cursor], true
}

func (m DrawerModel) Update(msg tea.Msg) (DrawerModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch km.Type {
		case tea.KeyEsc, tea.KeyEnter, tea.KeyTab:
			m.searching = false
			m.Search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(km)
		m.filter()
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.Search), km.Type == tea.KeyTab:
		m.searching = true
		return m, m.Search.Focus()
	case key.Matches(km, keys.Back):
		if m.Search.Value() != "" {
			m.Search.SetValue("")
			m.filter()
			return m, nil
		}
		return m, func() tea.Msg { return backMsg{} }
	case key.Matches(km, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(km, keys.Down):
		if m.Cursor < len(m.filtered)-1 {
			m.Cursor++
		}
	case key.Matches(km, keys.Enter):
		if app, ok := m.Selected(); ok {
			return m, func() tea.Msg { return launchMsg{pkg: app.Package} }
		}
	case key.Matches(km, keys.Favorite):
		if app, ok := m.Selected(); ok {
			return m, func() tea.Msg { return toggleFavoriteMsg{app: app} }
		}
	case key.Matches(km, keys.Restrict):
		if app, ok := m.Selected(); ok {
			return m, func() tea.Msg { return openPickerMsg{app: app} }
		}
	}
	return m, nil
}

func (m DrawerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("All apps") + "\n\n")

	if m.searching {
		m.Search.PromptStyle = focusedStyle
	} else {
		m.Search.PromptStyle = blurredStyle
	}
	b.WriteString(m.Search.View() + "\n\n")

	rows := max(m.Height-12, 5)
	start := 0
	if m.Cursor >= rows {
		start = m.Cursor - rows + 1
	}
	end := min(start+rows, len(m.filtered))

	width := max(m.Width-12, 10)
	if len(m.filtered) == 0 {
		b.WriteString(blurredStyle.Render("No apps match") + "\n")
	}
	for i := start; i < end; i++ {
		app := m.filtered[i]
		star := "  "
		if m.favs[app.Package] {
			star = "★ "
		}
		line := star + app.Label(width)
		if i == m.Cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n" + blurredStyle.Render(fmt.Sprintf("%d shown", len(m.filtered))))
	if m.Hidden > 0 {
		b.WriteString("  " + restrictedStyle.Render(fmt.Sprintf("%d hidden", m.Hidden)))
	}
	b.WriteString("\n\n" + m.help.View(bindings{keys.Enter, keys.Search, keys.Favorite, keys.Restrict, keys.Back}))
	return b.String()
}

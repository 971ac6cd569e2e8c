package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timeblessed/catalog"
	"timeblessed/events"
)

// Greeting follows the hour of t: 5-11 morning, 12-16 afternoon, 17-20 evening.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h <= 11:
		return "Good morning"
	case h >= 12 && h <= 16:
		return "Good afternoon"
	case h >= 17 && h <= 20:
		return "Good evening"
	default:
		return "Good night"
	}
}

type HomeModel struct {
	Favorites []catalog.App
	Hidden    int
	Cursor    int
	Now       time.Time
	Banner    *events.Event
	Width     int
	help      help.Model
}

func NewHomeModel() HomeModel {
	return HomeModel{help: help.New()}
}

func (m *HomeModel) SetFavorites(favs []catalog.App, hidden int) {
	m.Favorites = favs
	m.Hidden = hidden
	if m.Cursor >= len(favs) {
		m.Cursor = max(0, len(favs)-1)
	}
}

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(km, keys.Down):
		if m.Cursor < len(m.Favorites)-1 {
			m.Cursor++
		}
	case key.Matches(km, keys.Enter):
		if len(m.Favorites) > 0 {
			pkg := m.Favorites[m.Cursor].Package
			return m, func() tea.Msg { return launchMsg{pkg: pkg} }
		}
	case key.Matches(km, keys.Open):
		if m.Banner != nil {
			pkg := m.Banner.Package
			m.Banner = nil
			return m, func() tea.Msg { return launchMsg{pkg: pkg} }
		}
	case key.Matches(km, keys.Back):
		m.Banner = nil
	case key.Matches(km, keys.Drawer):
		return m, func() tea.Msg { return navigateMsg{to: stateDrawer} }
	case key.Matches(km, keys.Settings):
		return m, func() tea.Msg { return navigateMsg{to: stateSettings} }
	case key.Matches(km, keys.Prefs):
		return m, func() tea.Msg { return navigateMsg{to: statePrefs} }
	}
	return m, nil
}

func (m HomeModel) View() string {
	var b strings.Builder

	if m.Banner != nil {
		b.WriteString(bannerStyle.Render(m.Banner.Title+"  [o] open  [esc] dismiss") + "\n\n")
	}

	b.WriteString(clockStyle.Render(m.Now.Format("3:04 PM")) + "\n")
	b.WriteString(blurredStyle.Render(m.Now.Format("Monday, January 2")) + "\n")
	b.WriteString(greetingStyle.Render(Greeting(m.Now)) + "\n\n")

	b.WriteString(titleStyle.Render("Favorites") + "\n\n")
	if len(m.Favorites) == 0 {
		b.WriteString(blurredStyle.Render("No favorites available right now. Press 'a' and 'f' to add one.") + "\n")
	}
	width := m.Width - 6
	for i, app := range m.Favorites {
		line := app.Label(width)
		if i == m.Cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	if m.Hidden > 0 {
		b.WriteString("\n" + restrictedStyle.Render(fmt.Sprintf("%d app(s) hidden by time restrictions", m.Hidden)) + "\n")
	}

	b.WriteString("\n" + m.help.View(bindings{keys.Up, keys.Down, keys.Enter, keys.Drawer, keys.Settings, keys.Prefs, keys.Quit}))
	return lipgloss.NewStyle().Width(max(m.Width, 0)).Render(b.String())
}

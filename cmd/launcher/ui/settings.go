package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timeblessed/catalog"
	"timeblessed/store"
)

// SettingsModel manages restrictions for every installed app.
type SettingsModel struct {
	Table        table.Model
	Search       textinput.Model
	searching    bool
	apps         []catalog.App
	rows         []catalog.App
	restrictions map[string]store.AppRestriction
	now          time.Time
	confirmClear bool
	help         help.Model
}

func NewSettingsModel(height int) SettingsModel {
	columns := []table.Column{
		{Title: "App", Width: 26},
		{Title: "Category", Width: 14},
		{Title: "State", Width: 10},
		{Title: "Window", Width: 20},
		{Title: "Status", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-14, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "Filter apps"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return SettingsModel{
		Table:        t,
		Search:       ti,
		restrictions: map[string]store.AppRestriction{},
		help:         help.New(),
	}
}

// SetData replaces the app list and restrictions, keeping the cursor where possible.
func (m *SettingsModel) SetData(apps []catalog.App, rows []store.AppRestriction, now time.Time) {
	m.apps = apps
	m.now = now
	m.restrictions = make(map[string]store.AppRestriction, len(rows))
	for _, r := range rows {
		m.restrictions[r.PackageName] = r
	}
	m.rebuild()
}

func (m *SettingsModel) rebuild() {
	m.rows = catalog.Search(m.apps, m.Search.Value())
	trs := make([]table.Row, 0, len(m.rows))
	for _, app := range m.rows {
		trs = append(trs, m.row(app))
	}
	m.Table.SetRows(trs)
	if c := m.Table.Cursor(); c >= len(trs) {
		m.Table.SetCursor(max(0, len(trs)-1))
	}
}

func (m SettingsModel) row(app catalog.App) table.Row {
	r, ok := m.restrictions[app.Package]
	if !ok || !r.IsRestricted {
		return table.Row{app.Name, app.Category.Title(), "free", "-", "Always available"}
	}
	rule := r.Rule()
	return table.Row{r.DisplayName(), app.Category.Title(), "restricted", r.Window().String(), rule.Describe(m.now)}
}

func (m SettingsModel) Selected() (catalog.App, bool) {
	c := m.Table.Cursor()
	if c < 0 || c >= len(m.rows) {
		return catalog.App{}, false
	}
	return m.rows[c], true
}

func (m SettingsModel) restricted(pkg string) bool {
	r, ok := m.restrictions[pkg]
	return ok && r.IsRestricted
}

// Stats returns total, restricted and free counts over all installed apps.
func (m SettingsModel) Stats() (total, restricted, free int) {
	for _, a := range m.apps {
		if m.restricted(a.Package) {
			restricted++
		}
	}
	total = len(m.apps)
	return total, restricted, total - restricted
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch km.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
			m.Search.Blur()
			m.Table.Focus()
			return m, nil
		}
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(km)
		m.rebuild()
		return m, cmd
	}

	if !key.Matches(km, keys.ClearAll) {
		m.confirmClear = false
	}

	switch {
	case key.Matches(km, keys.Back):
		return m, func() tea.Msg { return backMsg{} }
	case key.Matches(km, keys.Search):
		m.searching = true
		m.Table.Blur()
		return m, m.Search.Focus()
	case key.Matches(km, keys.ClearAll):
		if !m.confirmClear {
			m.confirmClear = true
			return m, nil
		}
		m.confirmClear = false
		return m, func() tea.Msg { return clearAllMsg{} }
	case key.Matches(km, keys.Toggle):
		app, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if m.restricted(app.Package) {
			name := m.restrictions[app.Package].DisplayName()
			return m, func() tea.Msg { return requestUnrestrictMsg{pkg: app.Package, name: name} }
		}
		return m, func() tea.Msg { return openPickerMsg{app: app} }
	case key.Matches(km, keys.Edit):
		if app, ok := m.Selected(); ok {
			return m, func() tea.Msg { return openPickerMsg{app: app} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(km)
	return m, cmd
}

func (m SettingsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("App restrictions") + "\n\n")

	total, restricted, free := m.Stats()
	b.WriteString(fmt.Sprintf("Total %d  ", total) +
		restrictedStyle.Render(fmt.Sprintf("Restricted %d", restricted)) + "  " +
		freeStyle.Render(fmt.Sprintf("Free %d", free)) + "\n\n")

	if m.searching || m.Search.Value() != "" {
		b.WriteString(m.Search.View() + "\n\n")
	}

	b.WriteString(m.Table.View() + "\n\n")

	if m.confirmClear {
		b.WriteString(errorMessageStyle("Press C again to remove every restriction") + "\n\n")
	}
	b.WriteString(m.help.View(bindings{keys.Up, keys.Down, keys.Toggle, keys.Edit, keys.Search, keys.ClearAll, keys.Back}))
	return b.String()
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeblessed/restriction"
	"timeblessed/store"
)

type prefItem int

const (
	prefEnabled prefItem = iota
	prefSound
	prefVibration
	prefQuiet
	prefQuietStart
	prefQuietEnd
	prefCount
)

// PrefsModel edits notification preferences; every change is saved immediately.
type PrefsModel struct {
	Prefs  store.NotificationPreferences
	Cursor prefItem
	help   help.Model
}

func NewPrefsModel(p store.NotificationPreferences) PrefsModel {
	return PrefsModel{Prefs: p, help: help.New()}
}

func (m PrefsModel) Update(msg tea.Msg) (PrefsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	before := m.Prefs
	switch {
	case key.Matches(km, keys.Back):
		return m, func() tea.Msg { return backMsg{} }
	case key.Matches(km, keys.Up):
		m.Cursor = (m.Cursor + prefCount - 1) % prefCount
	case key.Matches(km, keys.Down):
		m.Cursor = (m.Cursor + 1) % prefCount
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Enter):
		m.toggle()
	case key.Matches(km, keys.Left):
		m.shiftHour(-1)
	case key.Matches(km, keys.Right):
		m.shiftHour(1)
	}
	if m.Prefs == before {
		return m, nil
	}
	p := m.Prefs
	return m, func() tea.Msg { return savePrefsMsg{prefs: p} }
}

func (m *PrefsModel) toggle() {
	switch m.Cursor {
	case prefEnabled:
		m.Prefs.Enabled = !m.Prefs.Enabled
	case prefSound:
		m.Prefs.Sound = !m.Prefs.Sound
	case prefVibration:
		m.Prefs.Vibration = !m.Prefs.Vibration
	case prefQuiet:
		m.Prefs.QuietHoursEnabled = !m.Prefs.QuietHoursEnabled
	}
}

func (m *PrefsModel) shiftHour(dir int) {
	switch m.Cursor {
	case prefQuietStart:
		m.Prefs.QuietHoursStart = wrap(m.Prefs.QuietHoursStart+dir, 24)
	case prefQuietEnd:
		m.Prefs.QuietHoursEnd = wrap(m.Prefs.QuietHoursEnd+dir, 24)
	}
}

func onOff(v bool) string {
	if v {
		return freeStyle.Render("on")
	}
	return blurredStyle.Render("off")
}

func (m PrefsModel) View() string {
	p := m.Prefs
	items := []struct{ label, value string }{
		{"Notifications", onOff(p.Enabled)},
		{"Sound", onOff(p.Sound)},
		{"Vibration", onOff(p.Vibration)},
		{"Quiet hours", onOff(p.QuietHoursEnabled)},
		{"Quiet from", restriction.FormatClock(p.QuietHoursStart, 0)},
		{"Quiet until", restriction.FormatClock(p.QuietHoursEnd, 0)},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Notifications") + "\n\n")
	for i, it := range items {
		label := it.label + strings.Repeat(" ", 14-len(it.label))
		if prefItem(i) == m.Cursor {
			b.WriteString(selectedStyle.Render("> "+label) + " " + it.value + "\n")
			continue
		}
		b.WriteString("  " + label + " " + it.value + "\n")
	}
	if p.QuietHoursEnabled {
		b.WriteString("\n" + blurredStyle.Render("No notifications between "+
			restriction.FormatClock(p.QuietHoursStart, 0)+" and "+restriction.FormatClock(p.QuietHoursEnd, 0)) + "\n")
	}
	toggle := keys.Toggle
	toggle.SetHelp("space", "toggle")
	adjust := key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "change hour"))
	b.WriteString("\n" + m.help.View(bindings{keys.Up, keys.Down, toggle, adjust, keys.Back}))
	return b.String()
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeblessed/catalog"
	"timeblessed/restriction"
	"timeblessed/store"
)

const minuteStep = 15

type pickerField int

const (
	fieldFromHour pickerField = iota
	fieldFromMinute
	fieldToHour
	fieldToMinute
	fieldCount
)

// PickerModel edits the allowed window for one app.
type PickerModel struct {
	App    catalog.App
	Window restriction.TimeRange
	Field  pickerField
	help   help.Model
}

// NewPickerModel starts from the stored window, or 9:00 AM - 10:00 AM.
func NewPickerModel(app catalog.App, current *store.AppRestriction) PickerModel {
	w := restriction.HourRange(9, 10)
	if current != nil && current.IsRestricted {
		w = current.Window()
	}
	return PickerModel{App: app, Window: w, help: help.New()}
}

func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Back):
		return m, func() tea.Msg { return backMsg{} }
	case key.Matches(km, keys.Left), km.Type == tea.KeyShiftTab:
		m.Field = (m.Field + fieldCount - 1) % fieldCount
	case key.Matches(km, keys.Right), km.Type == tea.KeyTab:
		m.Field = (m.Field + 1) % fieldCount
	case key.Matches(km, keys.Up):
		m.adjust(1)
	case key.Matches(km, keys.Down):
		m.adjust(-1)
	case key.Matches(km, keys.Enter):
		if m.Window.Validate() != nil {
			return m, nil
		}
		app, w := m.App, m.Window
		return m, func() tea.Msg { return pickerSavedMsg{app: app, window: w} }
	}
	return m, nil
}

func (m *PickerModel) adjust(dir int) {
	switch m.Field {
	case fieldFromHour:
		m.Window.FromHour = wrap(m.Window.FromHour+dir, 24)
	case fieldFromMinute:
		m.Window.FromMinute = wrap(m.Window.FromMinute+dir*minuteStep, 60)
	case fieldToHour:
		m.Window.ToHour = wrap(m.Window.ToHour+dir, 24)
	case fieldToMinute:
		m.Window.ToMinute = wrap(m.Window.ToMinute+dir*minuteStep, 60)
	}
}

func wrap(v, n int) int { return ((v % n) + n) % n }

func (m PickerModel) fieldView(f pickerField, text string) string {
	if m.Field == f {
		return selectedStyle.Render(text)
	}
	return focusedStyle.Render(text)
}

func (m PickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Allowed time for "+m.App.Name) + "\n\n")

	w := m.Window
	b.WriteString("From  " + m.fieldView(fieldFromHour, fmt.Sprintf("%02d", w.FromHour)) + ":" +
		m.fieldView(fieldFromMinute, fmt.Sprintf("%02d", w.FromMinute)) +
		blurredStyle.Render("  ("+w.From().String()+")") + "\n")
	b.WriteString("To    " + m.fieldView(fieldToHour, fmt.Sprintf("%02d", w.ToHour)) + ":" +
		m.fieldView(fieldToMinute, fmt.Sprintf("%02d", w.ToMinute)) +
		blurredStyle.Render("  ("+w.To().String()+")") + "\n\n")

	b.WriteString(fmt.Sprintf("Duration: %g hours", w.DurationHours()))
	if w.Overnight() {
		b.WriteString(blurredStyle.Render("  (overnight)"))
	}
	b.WriteString("\n")

	if err := w.Validate(); err != nil {
		b.WriteString(errorMessageStyle("Choose a window between 1 and 2 hours") + "\n")
	} else {
		saved := restriction.HourRange(w.FromHour, w.ToHour)
		b.WriteString(freeStyle.Render("Saved as "+saved.String()) + "\n")
	}

	save := keys.Enter
	save.SetHelp("enter", "save")
	save.SetEnabled(w.Valid())
	b.WriteString("\n" + m.help.View(bindings{keys.Left, keys.Right, keys.Up, keys.Down, save, keys.Back}))
	return dialogStyle.Render(b.String())
}

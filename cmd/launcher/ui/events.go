package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timeblessed/catalog"
	"timeblessed/events"
)

type appsLoadedMsg struct {
	apps []catalog.App
	err  error
}

// refreshMsg triggers a visibility re-derivation.
type refreshMsg time.Time

type clockMsg time.Time

type busEventMsg events.Event

type busClosedMsg struct{}

type catalogChangedMsg struct{}

type statusMsg string

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// dataChangedMsg follows a mutation made from the UI.
type dataChangedMsg struct{}

func loadAppsCmd(scan func() ([]catalog.App, error)) tea.Cmd {
	return func() tea.Msg {
		apps, err := scan()
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func refreshTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

// waitForEvent blocks on the bus subscription; it is re-issued after each event.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return busClosedMsg{}
		}
		return busEventMsg(e)
	}
}

func waitForCatalogChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return catalogChangedMsg{}
	}
}

func statusCmd(s string) tea.Cmd {
	return func() tea.Msg { return statusMsg(s) }
}

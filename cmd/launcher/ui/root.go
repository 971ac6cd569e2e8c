package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeblessed/catalog"
	"timeblessed/events"
	"timeblessed/logger"
	"timeblessed/service"
	"timeblessed/unrestrict"
)

type state int

const (
	stateHome state = iota
	stateDrawer
	stateSettings
	statePicker
	stateUnrestrict
	statePrefs
)

const DefaultRefresh = time.Minute

// Deps is everything the launcher UI talks to.
type Deps struct {
	Ctx      context.Context
	Launcher *service.Launcher
	Scan     func() ([]catalog.App, error)
	Launch   func(pkg string) error
	// OnApps is told about every freshly scanned catalog.
	OnApps   func([]catalog.App)
	Events   <-chan events.Event
	Changes  <-chan struct{}
	Refresh  time.Duration
	Pool     []unrestrict.Question
	Wait     int
	FlowOpts []unrestrict.Option
}

type RootModel struct {
	State    state
	returnTo state
	deps     Deps

	apps []catalog.App
	now  time.Time

	Home       HomeModel
	Drawer     DrawerModel
	Settings   SettingsModel
	Picker     PickerModel
	Unrestrict UnrestrictModel
	Prefs      PrefsModel

	dialogID int
	status   string
	Err      error
	Quitting bool
	width    int
	height   int
}

func NewRootModel(d Deps) RootModel {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Refresh <= 0 {
		d.Refresh = DefaultRefresh
	}
	if d.Pool == nil {
		d.Pool = unrestrict.DefaultPool
	}
	if d.Wait <= 0 {
		d.Wait = unrestrict.DefaultWait
	}
	return RootModel{
		State:    stateHome,
		deps:     d,
		now:      d.Launcher.Now(),
		Home:     NewHomeModel(),
		Drawer:   NewDrawerModel(),
		Settings: NewSettingsModel(24),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(
		loadAppsCmd(m.deps.Scan),
		refreshTick(m.deps.Refresh),
		clockTick(),
		waitForEvent(m.deps.Events),
		waitForCatalogChange(m.deps.Changes),
	)
}

// recompute re-derives everything that depends on the clock or stored rules.
func (m *RootModel) recompute() {
	l := m.deps.Launcher
	m.now = l.Now()

	visible, hidden, err := l.Visible(m.apps)
	if err != nil {
		m.Err = err
		return
	}
	favs, err := l.VisibleFavorites(m.apps)
	if err != nil {
		m.Err = err
		return
	}
	stored, err := l.Favorites()
	if err != nil {
		m.Err = err
		return
	}
	rows, err := l.Restrictions()
	if err != nil {
		m.Err = err
		return
	}

	favSet := make(map[string]bool, len(stored))
	for _, f := range stored {
		favSet[f.PackageName] = true
	}

	m.Home.Now = m.now
	m.Home.SetFavorites(favs, hidden)
	m.Drawer.SetApps(visible, hidden, favSet)
	m.Settings.SetData(m.apps, rows, m.now)
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.Home.Width = msg.Width
		m.Drawer.Width, m.Drawer.Height = msg.Width, msg.Height
		m.Settings.Table.SetHeight(max(msg.Height-14, 5))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (m.State == stateHome && key.Matches(msg, keys.Quit)) {
			m.Quitting = true
			return m, tea.Quit
		}
		m.status = ""
		m.Err = nil

	case appsLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.apps = msg.apps
		if m.deps.OnApps != nil {
			m.deps.OnApps(msg.apps)
		}
		m.recompute()
		return m, nil

	case refreshMsg:
		m.recompute()
		return m, refreshTick(m.deps.Refresh)

	case clockMsg:
		prev := m.now
		m.now = time.Time(msg)
		m.Home.Now = m.now
		if prev.Minute() != m.now.Minute() {
			m.recompute()
		}
		return m, clockTick()

	case busEventMsg:
		e := events.Event(msg)
		if e.Kind == events.AppAvailable {
			m.Home.Banner = &e
		}
		m.recompute()
		return m, waitForEvent(m.deps.Events)

	case busClosedMsg:
		return m, nil

	case catalogChangedMsg:
		return m, tea.Batch(loadAppsCmd(m.deps.Scan), waitForCatalogChange(m.deps.Changes))

	case dataChangedMsg:
		m.recompute()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case errMsg:
		m.Err = msg.err
		return m, nil

	case navigateMsg:
		m.State = msg.to
		if msg.to == statePrefs {
			p, err := m.deps.Launcher.Preferences()
			if err != nil {
				m.Err = err
			}
			m.Prefs = NewPrefsModel(p)
		}
		return m, nil

	case backMsg:
		switch m.State {
		case statePicker, stateUnrestrict:
			m.State = m.returnTo
		default:
			m.State = stateHome
		}
		return m, nil

	case launchMsg:
		return m, m.launch(msg.pkg)

	case toggleFavoriteMsg:
		return m, m.toggleFavorite(msg.app)

	case openPickerMsg:
		current, err := m.deps.Launcher.Restriction(msg.app.Package)
		if err != nil {
			m.Err = err
			return m, nil
		}
		m.returnTo = m.State
		m.Picker = NewPickerModel(msg.app, current)
		m.State = statePicker
		return m, nil

	case pickerSavedMsg:
		m.State = m.returnTo
		return m, m.saveRestriction(msg)

	case requestUnrestrictMsg:
		m.dialogID++
		m.returnTo = m.State
		m.Unrestrict = NewUnrestrictModel(m.dialogID, msg.pkg, msg.name, m.deps.Pool, m.deps.Wait, m.deps.FlowOpts...)
		m.State = stateUnrestrict
		return m, m.Unrestrict.Init()

	case unrestrictResolvedMsg:
		m.State = m.returnTo
		if msg.outcome != unrestrict.Unrestricted {
			m.status = msg.name + " stays restricted"
			return m, nil
		}
		return m, m.removeRestriction(msg.pkg, msg.name)

	case clearAllMsg:
		return m, m.clearAll()

	case savePrefsMsg:
		m.Prefs.Prefs = msg.prefs
		if err := m.deps.Launcher.SavePreferences(msg.prefs); err != nil {
			m.Err = err
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.State {
	case stateHome:
		m.Home, cmd = m.Home.Update(msg)
	case stateDrawer:
		m.Drawer, cmd = m.Drawer.Update(msg)
	case stateSettings:
		m.Settings, cmd = m.Settings.Update(msg)
	case statePicker:
		m.Picker, cmd = m.Picker.Update(msg)
	case stateUnrestrict:
		m.Unrestrict, cmd = m.Unrestrict.Update(msg)
	case statePrefs:
		m.Prefs, cmd = m.Prefs.Update(msg)
	}
	return m, cmd
}

// launch refuses apps that are outside their window at the moment of launch.
func (m RootModel) launch(pkg string) tea.Cmd {
	l, launchFn := m.deps.Launcher, m.deps.Launch
	return func() tea.Msg {
		st, err := l.Status(pkg)
		if err != nil {
			return errMsg{err: err}
		}
		if !st.Visible {
			return statusMsg(fmt.Sprintf("%s is restricted. %s", st.Name, st.Description))
		}
		if launchFn == nil {
			return nil
		}
		if err := launchFn(pkg); err != nil {
			logger.Warnf("launch %s: %v", pkg, err)
			return errMsg{err: err}
		}
		return statusMsg("Launched " + pkg)
	}
}

func (m RootModel) toggleFavorite(app catalog.App) tea.Cmd {
	l := m.deps.Launcher
	return func() tea.Msg {
		fav, err := l.ToggleFavorite(app.Package, app.Name)
		if err != nil {
			return errMsg{err: err}
		}
		return tea.BatchMsg{
			func() tea.Msg { return dataChangedMsg{} },
			func() tea.Msg {
				if fav {
					return statusMsg(app.Name + " added to favorites")
				}
				return statusMsg(app.Name + " removed from favorites")
			},
		}
	}
}

func (m RootModel) saveRestriction(msg pickerSavedMsg) tea.Cmd {
	l, ctx := m.deps.Launcher, m.deps.Ctx
	return func() tea.Msg {
		row, err := l.SetRestriction(ctx, msg.app.Package, msg.app.Name, msg.window)
		if err != nil {
			return errMsg{err: err}
		}
		return tea.BatchMsg{
			func() tea.Msg { return dataChangedMsg{} },
			statusCmd(fmt.Sprintf("%s restricted to %s", row.DisplayName(), row.Window())),
		}
	}
}

func (m RootModel) removeRestriction(pkg, name string) tea.Cmd {
	l, ctx := m.deps.Launcher, m.deps.Ctx
	return func() tea.Msg {
		if err := l.RemoveRestriction(ctx, pkg); err != nil {
			return errMsg{err: err}
		}
		return tea.BatchMsg{
			func() tea.Msg { return dataChangedMsg{} },
			statusCmd(name + " is no longer restricted"),
		}
	}
}

func (m RootModel) clearAll() tea.Cmd {
	l, ctx := m.deps.Launcher, m.deps.Ctx
	return func() tea.Msg {
		if err := l.ClearRestrictions(ctx); err != nil {
			return errMsg{err: err}
		}
		return tea.BatchMsg{
			func() tea.Msg { return dataChangedMsg{} },
			statusCmd("All restrictions removed"),
		}
	}
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	var body string
	switch m.State {
	case stateHome:
		body = m.Home.View()
	case stateDrawer:
		body = m.Drawer.View()
	case stateSettings:
		body = m.Settings.View()
	case statePicker:
		body = m.Picker.View()
	case stateUnrestrict:
		body = m.Unrestrict.View()
	case statePrefs:
		body = m.Prefs.View()
	default:
		body = "Unknown state"
	}
	switch {
	case m.Err != nil:
		body += "\n\n" + errorMessageStyle(m.Err.Error())
	case m.status != "":
		body += "\n\n" + statusMessageStyle(m.status)
	}
	return docStyle.Render(body)
}

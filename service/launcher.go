package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"timeblessed/catalog"
	"timeblessed/events"
	"timeblessed/logger"
	"timeblessed/restriction"
	"timeblessed/store"
)

var (
	ErrInvalidRange = restriction.ErrInvalidRange
	ErrInvalidHour  = restriction.ErrInvalidHour
	ErrEmptyPackage = errors.New("empty package name")
	ErrNotFound     = errors.New("restriction not found")
)

// Status is the evaluated state of one package at a point in time.
type Status struct {
	Package     string                 `json:"package"`
	Name        string                 `json:"name,omitempty"`
	Restricted  bool                   `json:"restricted"`
	Visible     bool                   `json:"visible"`
	Window      *restriction.TimeRange `json:"window,omitempty"`
	Description string                 `json:"description"`
}

// Launcher is the use-case layer shared by the terminal launcher and the control API.
type Launcher struct {
	repos *store.Repos
	pub   events.Publisher
	now   func() time.Time
}

type Option func(*Launcher)

func WithClock(now func() time.Time) Option { return func(l *Launcher) { l.now = now } }

// New accepts a nil publisher.
func New(repos *store.Repos, pub events.Publisher, opts ...Option) *Launcher {
	l := &Launcher{repos: repos, pub: pub, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Launcher) Now() time.Time { return l.now() }

func (l *Launcher) Restrictions() ([]store.AppRestriction, error) {
	return l.repos.Restrictions.List()
}

// Restriction returns nil, nil for a package without a restriction.
func (l *Launcher) Restriction(pkg string) (*store.AppRestriction, error) {
	return l.repos.Restrictions.Get(pkg)
}

func (l *Launcher) Rules() (restriction.Set, error) {
	rows, err := l.repos.Restrictions.List()
	if err != nil {
		return nil, err
	}
	return store.Rules(rows), nil
}

// SetRestriction validates window at minute precision and persists its hours.
func (l *Launcher) SetRestriction(ctx context.Context, pkg, name string, window restriction.TimeRange) (*store.AppRestriction, error) {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return nil, ErrEmptyPackage
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	existing, err := l.repos.Restrictions.Get(pkg)
	if err != nil {
		return nil, err
	}
	row := &store.AppRestriction{
		PackageName:   pkg,
		AppName:       name,
		IsRestricted:  true,
		ShowFromHour:  window.FromHour,
		ShowUntilHour: window.ToHour,
	}
	if existing != nil {
		row.CustomLabel = existing.CustomLabel
		row.CreatedAt = existing.CreatedAt
		if name == "" {
			row.AppName = existing.AppName
		}
	}
	if err := l.repos.Restrictions.Upsert(row); err != nil {
		return nil, err
	}
	logger.L.Info().Str("package", pkg).Str("window", row.Window().String()).Msg("restriction saved")
	l.changed(ctx)
	return row, nil
}

// SetLabel overrides the display name used in notifications. An empty label clears it.
func (l *Launcher) SetLabel(ctx context.Context, pkg, label string) error {
	row, err := l.repos.Restrictions.Get(pkg)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	if label = strings.TrimSpace(label); label == "" {
		row.CustomLabel = nil
	} else {
		row.CustomLabel = &label
	}
	if err := l.repos.Restrictions.Upsert(row); err != nil {
		return err
	}
	l.changed(ctx)
	return nil
}

func (l *Launcher) RemoveRestriction(ctx context.Context, pkg string) error {
	if err := l.repos.Restrictions.Delete(pkg); err != nil {
		return err
	}
	logger.L.Info().Str("package", pkg).Msg("restriction removed")
	l.changed(ctx)
	return nil
}

func (l *Launcher) ClearRestrictions(ctx context.Context) error {
	if err := l.repos.Restrictions.DeleteAll(); err != nil {
		return err
	}
	logger.Info("all restrictions cleared")
	l.changed(ctx)
	return nil
}

func (l *Launcher) RestrictedCount() (int, error) {
	n, err := l.repos.Restrictions.CountRestricted()
	return int(n), err
}

// Status never fails for an unknown package; it is simply unrestricted.
func (l *Launcher) Status(pkg string) (Status, error) {
	row, err := l.repos.Restrictions.Get(pkg)
	if err != nil {
		return Status{}, err
	}
	now := l.now()
	if row == nil || !row.IsRestricted {
		st := Status{Package: pkg, Visible: true, Description: "Available now"}
		if row != nil {
			st.Name = row.DisplayName()
		}
		return st, nil
	}
	w := row.Window()
	rule := row.Rule()
	return Status{
		Package:     pkg,
		Name:        row.DisplayName(),
		Restricted:  rule.RestrictedAt(now),
		Visible:     rule.VisibleAt(now),
		Window:      &w,
		Description: rule.Describe(now),
	}, nil
}

// Visible filters apps against the stored rules at the current time.
func (l *Launcher) Visible(apps []catalog.App) ([]catalog.App, int, error) {
	rules, err := l.Rules()
	if err != nil {
		return nil, 0, err
	}
	visible, hidden := restriction.Filter(apps, catalog.PackageOf, rules, l.now())
	return visible, hidden, nil
}

func (l *Launcher) Favorites() ([]store.FavoriteApp, error) {
	return l.repos.Favorites.List()
}

// VisibleFavorites returns installed favorites that are visible now, newest first.
func (l *Launcher) VisibleFavorites(apps []catalog.App) ([]catalog.App, error) {
	favs, err := l.repos.Favorites.List()
	if err != nil {
		return nil, err
	}
	rules, err := l.Rules()
	if err != nil {
		return nil, err
	}
	now := l.now()
	out := make([]catalog.App, 0, len(favs))
	for _, f := range favs {
		app, ok := catalog.Find(apps, f.PackageName)
		if !ok || !rules.VisibleAt(f.PackageName, now) {
			continue
		}
		out = append(out, app)
	}
	return out, nil
}

func (l *Launcher) IsFavorite(pkg string) (bool, error) {
	f, err := l.repos.Favorites.Get(pkg)
	return f != nil, err
}

func (l *Launcher) AddFavorite(pkg, name string) error {
	if strings.TrimSpace(pkg) == "" {
		return ErrEmptyPackage
	}
	return l.repos.Favorites.Add(pkg, name)
}

func (l *Launcher) RemoveFavorite(pkg string) error {
	return l.repos.Favorites.Remove(pkg)
}

// ToggleFavorite reports whether pkg is a favorite afterwards.
func (l *Launcher) ToggleFavorite(pkg, name string) (bool, error) {
	fav, err := l.IsFavorite(pkg)
	if err != nil {
		return false, err
	}
	if fav {
		return false, l.RemoveFavorite(pkg)
	}
	return true, l.AddFavorite(pkg, name)
}

func (l *Launcher) Preferences() (store.NotificationPreferences, error) {
	return l.repos.Preferences.Load()
}

func (l *Launcher) SavePreferences(p store.NotificationPreferences) error {
	return l.repos.Preferences.Save(p)
}

func (l *Launcher) changed(ctx context.Context) {
	if l.pub == nil {
		return
	}
	if err := l.pub.Publish(ctx, events.Event{Kind: events.RestrictionsChanged}); err != nil {
		logger.Warnf("publish restrictions change: %v", err)
	}
}

package catalog

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type App struct {
	Name     string
	Package  string // desktop-file ID
	Category Category
	Exec     string
	Path     string
}

// Label fits the name into width terminal cells.
func (a App) Label(width int) string {
	if width <= 0 {
		return a.Name
	}
	return runewidth.Truncate(a.Name, width, "…")
}

func (a App) PackageName() string { return a.Package }

// PackageOf is the key func used when filtering app lists.
func PackageOf(a App) string { return a.Package }

// Find returns the app with the given package identifier.
func Find(apps []App, pkg string) (App, bool) {
	for _, a := range apps {
		if a.Package == pkg {
			return a, true
		}
	}
	return App{}, false
}

// Search matches query case-insensitively against name and identifier.
func Search(apps []App, query string) []App {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return apps
	}
	out := make([]App, 0, len(apps))
	for _, a := range apps {
		if strings.Contains(strings.ToLower(a.Name), q) || strings.Contains(strings.ToLower(a.Package), q) {
			out = append(out, a)
		}
	}
	return out
}

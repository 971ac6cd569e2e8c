package restriction

import (
	"fmt"
	"time"
)

// Rule is the evaluated form of a stored app restriction.
type Rule struct {
	Package    string
	Restricted bool
	Window     TimeRange
}

// VisibleAt reports whether the app may be shown at t. Unrestricted rules are always visible.
func (r Rule) VisibleAt(t time.Time) bool {
	if !r.Restricted {
		return true
	}
	return r.Window.Contains(ClockOf(t))
}

// RestrictedAt is the negation of VisibleAt.
func (r Rule) RestrictedAt(t time.Time) bool { return !r.VisibleAt(t) }

// NextAvailable returns the next moment the app becomes visible, or t itself when it already is.
func (r Rule) NextAvailable(t time.Time) time.Time {
	if r.VisibleAt(t) {
		return t
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), r.Window.FromHour, r.Window.FromMinute, 0, 0, t.Location())
	if !start.After(t) {
		start = start.AddDate(0, 0, 1)
	}
	return start
}

// Describe renders NextAvailable for display.
func (r Rule) Describe(t time.Time) string {
	next := r.NextAvailable(t)
	if next.Equal(t) {
		return "Available now"
	}
	label := FormatClock(next.Hour(), next.Minute())
	if sameDay(next, t) {
		return fmt.Sprintf("Available at %s", label)
	}
	return fmt.Sprintf("Available tomorrow at %s", label)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Set indexes rules by package identifier.
type Set map[string]Rule

func NewSet(rules []Rule) Set {
	s := make(Set, len(rules))
	for _, r := range rules {
		s[r.Package] = r
	}
	return s
}

// VisibleAt treats a package without a rule as unrestricted.
func (s Set) VisibleAt(pkg string, t time.Time) bool {
	r, ok := s[pkg]
	if !ok {
		return true
	}
	return r.VisibleAt(t)
}

// Filter keeps the items visible at t and counts the rest. It does not mutate items.
func Filter[T any](items []T, pkg func(T) string, rules Set, t time.Time) (visible []T, hidden int) {
	visible = make([]T, 0, len(items))
	for _, it := range items {
		if rules.VisibleAt(pkg(it), t) {
			visible = append(visible, it)
			continue
		}
		hidden++
	}
	return visible, hidden
}

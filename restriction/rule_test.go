package restriction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 12, hour, minute, 0, 0, time.UTC)
}

func TestRuleVisibility(t *testing.T) {
	r := Rule{Package: "org.example.Chat", Restricted: true, Window: HourRange(12, 13)}
	assert.False(t, r.VisibleAt(at(11, 59)))
	assert.True(t, r.VisibleAt(at(12, 0)))
	assert.True(t, r.VisibleAt(at(13, 0)))
	assert.False(t, r.VisibleAt(at(13, 1)))
	assert.True(t, r.RestrictedAt(at(20, 0)))

	open := Rule{Package: "org.example.Chat", Restricted: false, Window: HourRange(12, 13)}
	assert.True(t, open.VisibleAt(at(20, 0)))
}

func TestRuleVisibilityOvernight(t *testing.T) {
	r := Rule{Package: "p", Restricted: true, Window: HourRange(22, 6)}
	assert.True(t, r.VisibleAt(at(23, 0)))
	assert.True(t, r.VisibleAt(at(3, 0)))
	assert.False(t, r.VisibleAt(at(12, 0)))
}

func TestRuleDescribe(t *testing.T) {
	r := Rule{Package: "p", Restricted: true, Window: HourRange(18, 19)}
	assert.Equal(t, "Available now", r.Describe(at(18, 30)))
	assert.Equal(t, "Available at 6:00 PM", r.Describe(at(9, 0)))
	assert.Equal(t, "Available tomorrow at 6:00 PM", r.Describe(at(21, 0)))

	overnight := Rule{Package: "p", Restricted: true, Window: HourRange(23, 1)}
	assert.Equal(t, "Available now", overnight.Describe(at(0, 30)))
	assert.Equal(t, "Available at 11:00 PM", overnight.Describe(at(1, 30)))

	next := overnight.NextAvailable(at(1, 30))
	require.Equal(t, at(23, 0), next)
}

func TestSetMissingRuleIsVisible(t *testing.T) {
	s := NewSet([]Rule{{Package: "a", Restricted: true, Window: HourRange(9, 10)}})
	assert.True(t, s.VisibleAt("unknown", at(3, 0)))
	assert.False(t, s.VisibleAt("a", at(3, 0)))
}

func TestFilter(t *testing.T) {
	type app struct{ name, pkg string }
	apps := []app{{"Chat", "chat"}, {"Editor", "editor"}, {"Game", "game"}}
	rules := NewSet([]Rule{
		{Package: "chat", Restricted: true, Window: HourRange(12, 13)},
		{Package: "game", Restricted: true, Window: HourRange(22, 23)},
		{Package: "editor", Restricted: false, Window: HourRange(1, 2)},
	})
	pkg := func(a app) string { return a.pkg }

	visible, hidden := Filter(apps, pkg, rules, at(12, 30))
	assert.Equal(t, []app{{"Chat", "chat"}, {"Editor", "editor"}}, visible)
	assert.Equal(t, 1, hidden)

	again, hiddenAgain := Filter(apps, pkg, rules, at(12, 30))
	assert.Equal(t, visible, again)
	assert.Equal(t, hidden, hiddenAgain)

	visible, hidden = Filter(apps, pkg, rules, at(8, 0))
	assert.Equal(t, []app{{"Editor", "editor"}}, visible)
	assert.Equal(t, 2, hidden)
}

func TestQuietHours(t *testing.T) {
	q := QuietHours{Enabled: true, Start: 22, End: 7}
	assert.True(t, q.Active(at(23, 15)))
	assert.True(t, q.Active(at(6, 59)))
	assert.False(t, q.Active(at(12, 0)))

	q.Enabled = false
	assert.False(t, q.Active(at(23, 15)))

	day := QuietHours{Enabled: true, Start: 13, End: 14}
	assert.True(t, day.Active(at(13, 30)))
	assert.False(t, day.Active(at(14, 30)))
}

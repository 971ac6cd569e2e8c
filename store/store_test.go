package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeblessed/restriction"
)

func newTestRepos(t *testing.T) *Repos {
	t.Helper()
	db, err := OpenAndMigrate(Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "nested", "test.db")})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewRepos(db)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestRestrictionRepositoryCRUD(t *testing.T) {
	repos := newTestRepos(t)
	r := repos.Restrictions

	got, err := r.Get("org.example.chat")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, r.Upsert(&AppRestriction{PackageName: "org.example.chat", AppName: "Chat", IsRestricted: true, ShowFromHour: 9, ShowUntilHour: 10}))
	require.NoError(t, r.Upsert(&AppRestriction{PackageName: "org.example.atlas", AppName: "Atlas", IsRestricted: false}))

	got, err = r.Get("org.example.chat")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9, got.ShowFromHour)

	require.NoError(t, r.Upsert(&AppRestriction{PackageName: "org.example.chat", AppName: "Chat", IsRestricted: true, ShowFromHour: 20, ShowUntilHour: 21}))
	got, err = r.Get("org.example.chat")
	require.NoError(t, err)
	assert.Equal(t, 20, got.ShowFromHour)
	assert.Equal(t, 21, got.ShowUntilHour)

	all, err := r.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Atlas", all[0].AppName)

	restricted, err := r.ListRestricted()
	require.NoError(t, err)
	require.Len(t, restricted, 1)
	assert.Equal(t, "org.example.chat", restricted[0].PackageName)

	n, err := r.CountRestricted()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, r.Delete("org.example.chat"))
	got, err = r.Get("org.example.chat")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, r.DeleteAll())
	all, err = r.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAppRestrictionRule(t *testing.T) {
	label := "Work chat"
	a := AppRestriction{PackageName: "p", AppName: "Chat", IsRestricted: true, ShowFromHour: 22, ShowUntilHour: 23, CustomLabel: &label}
	assert.Equal(t, "Work chat", a.DisplayName())

	rules := Rules([]AppRestriction{a})
	at := func(h int) time.Time { return time.Date(2024, 3, 12, h, 30, 0, 0, time.UTC) }
	assert.True(t, rules.VisibleAt("p", at(22)))
	assert.False(t, rules.VisibleAt("p", at(12)))
	assert.True(t, rules.VisibleAt("other", at(12)))
}

func TestFavoriteRepository(t *testing.T) {
	repos := newTestRepos(t)
	f := repos.Favorites

	require.NoError(t, f.Add("a", "Alpha"))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, f.Add("b", "Beta"))
	require.NoError(t, f.Add("a", "Alpha"))

	list, err := f.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].PackageName)

	n, err := f.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, f.Remove("b"))
	got, err := f.Get("b")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, f.Clear())
	n, err = f.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSettingFlagsDefaultToRestricted(t *testing.T) {
	repos := newTestRepos(t)
	s := repos.Settings

	was, err := s.Flag("never.seen")
	require.NoError(t, err)
	assert.True(t, was)

	require.NoError(t, s.SetFlag("never.seen", false))
	was, err = s.Flag("never.seen")
	require.NoError(t, err)
	assert.False(t, was)

	v, ok, err := s.Get(FlagKey("never.seen"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestSettingIntFallsBackOnGarbage(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.Settings.Set("n", "not-a-number"))
	n, err := repos.Settings.GetInt("n", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestPreferenceRepository(t *testing.T) {
	repos := newTestRepos(t)
	p := repos.Preferences

	got, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), got)

	want := NotificationPreferences{Enabled: false, Sound: true, Vibration: false, QuietHoursEnabled: true, QuietHoursStart: 23, QuietHoursEnd: 6}
	require.NoError(t, p.Save(want))
	got, err = p.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	err = p.Save(NotificationPreferences{QuietHoursStart: 24})
	assert.ErrorIs(t, err, restriction.ErrInvalidHour)
}

func TestPreferencesSuppression(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 3, 12, h, 0, 0, 0, time.UTC) }
	p := DefaultPreferences()
	assert.False(t, p.Suppressed(at(23)))

	p.QuietHoursEnabled = true
	assert.True(t, p.Suppressed(at(23)))
	assert.True(t, p.Suppressed(at(3)))
	assert.False(t, p.Suppressed(at(12)))

	p = DefaultPreferences()
	p.Enabled = false
	assert.True(t, p.Suppressed(at(12)))
}

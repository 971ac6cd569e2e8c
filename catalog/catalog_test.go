package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, dir, rel, body string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func entry(name, exec string, extra ...string) string {
	s := "[Desktop Entry]\nType=Application\nName=" + name + "\nExec=" + exec + "\n"
	for _, e := range extra {
		s += e + "\n"
	}
	return s
}

func TestScan(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()

	writeEntry(t, user, "org.telegram.desktop.desktop", entry("Telegram", "telegram-desktop -- %u"))
	writeEntry(t, user, "kde/org.kde.kcalc.desktop", entry("KCalc", "kcalc"))
	writeEntry(t, user, "hidden.desktop", entry("Hidden", "hidden", "NoDisplay=true"))
	writeEntry(t, user, "gone.desktop", entry("Gone", "gone", "Hidden=true"))
	writeEntry(t, user, "noexec.desktop", "[Desktop Entry]\nType=Application\nName=Nothing\n")
	writeEntry(t, user, "link.desktop", "[Desktop Entry]\nType=Link\nName=Site\nURL=https://example.com\n")
	writeEntry(t, user, "readme.txt", "not an entry")

	writeEntry(t, system, "org.telegram.desktop.desktop", entry("Telegram (system)", "telegram"))
	writeEntry(t, system, "com.valvesoftware.Steam.desktop", entry("Steam Game Hub", "steam"))
	writeEntry(t, system, "gone.desktop", entry("Gone", "gone"))

	apps, err := Scan([]string{user, system, filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)

	var names []string
	for _, a := range apps {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"KCalc", "Steam Game Hub", "Telegram"}, names)

	kcalc, ok := Find(apps, "kde-org.kde.kcalc")
	require.True(t, ok)
	assert.Equal(t, "kcalc", kcalc.Exec)

	tg, ok := Find(apps, "org.telegram.desktop")
	require.True(t, ok)
	assert.Equal(t, Essential, tg.Category)
	assert.Equal(t, "telegram-desktop -- %u", tg.Exec)

	steam, ok := Find(apps, "com.valvesoftware.Steam")
	require.True(t, ok)
	assert.Equal(t, Gaming, steam.Category)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		pkg, name string
		want      Category
	}{
		{"com.whatsapp", "WhatsApp", Essential},
		{"com.discordapp.Discord", "Discord", Social},
		{"com.slack.Slack", "Slack", Work},
		{"com.spotify.Client", "Spotify", Entertainment},
		{"org.example.solitaire", "Card Game", Gaming},
		{"org.gnome.news", "News", News},
		{"org.example.shopper", "Shopper", Shopping},
		{"org.gnome.gedit", "Text Editor", Other},
		// Essential keywords win over later categories.
		{"org.example.settings.store", "Store settings", Essential},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.pkg, tt.name), tt.pkg)
	}
	assert.Equal(t, "Gaming", Gaming.Title())
}

func TestExecArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"firefox %u", []string{"firefox"}},
		{"code --new-window %F", []string{"code", "--new-window"}},
		{`"/opt/My App/run" --flag`, []string{"/opt/My App/run", "--flag"}},
		{"printf 100%%", []string{"printf", "100%"}},
		{`sh -c "echo\ hi"`, []string{"sh", "-c", "echo hi"}},
		{"  ", nil},
	}
	for _, tt := range tests {
		got := ExecArgs(tt.line)
		if len(tt.want) == 0 {
			assert.Empty(t, got, tt.line)
			continue
		}
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestExecLauncher(t *testing.T) {
	l := NewExecLauncher([]App{{Package: "a", Exec: "alpha --x %U"}, {Package: "blank", Exec: "%f"}})
	var gotName string
	var gotArgs []string
	l.start = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	require.NoError(t, l.Launch("a"))
	assert.Equal(t, "alpha", gotName)
	assert.Equal(t, []string{"--x"}, gotArgs)

	assert.ErrorIs(t, l.Launch("nope"), ErrUnknownApp)
	assert.ErrorIs(t, l.Launch("blank"), ErrEmptyExec)

	l.start = func(string, ...string) error { return errors.New("boom") }
	assert.Error(t, l.Launch("a"))

	l.Update(nil)
	assert.ErrorIs(t, l.Launch("a"), ErrUnknownApp)
}

func TestSearchAndLabel(t *testing.T) {
	apps := []App{{Name: "Telegram", Package: "org.telegram.desktop"}, {Name: "KCalc", Package: "org.kde.kcalc"}}
	assert.Len(t, Search(apps, ""), 2)
	assert.Len(t, Search(apps, "CALC"), 1)
	assert.Len(t, Search(apps, "telegram.desk"), 1)

	assert.Equal(t, "Telegram", apps[0].Label(20))
	short := apps[0].Label(5)
	assert.LessOrEqual(t, runewidth.StringWidth(short), 5)
	assert.True(t, strings.HasPrefix(short, "Te"))
}

func TestWatcherSignalsOnNewEntry(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	writeEntry(t, dir, "new.desktop", entry("New", "new"))

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal")
	}
}

func TestWatcherNeedsADirectory(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing")}, 0)
	assert.Error(t, err)
}

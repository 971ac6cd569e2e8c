package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"timeblessed/logger"
)

const entrySection = "Desktop Entry"

var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	KeyValueDelimiters:      "=",
	SkipUnrecognizableLines: true,
	PreserveSurroundedQuote: true,
}

// DefaultDirs returns the XDG application directories in lookup order.
func DefaultDirs() []string {
	home := os.Getenv("XDG_DATA_HOME")
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(h, ".local", "share")
		}
	}
	var dirs []string
	if home != "" {
		dirs = append(dirs, filepath.Join(home, "applications"))
	}
	data := os.Getenv("XDG_DATA_DIRS")
	if data == "" {
		data = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(data, ":") {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// Scan lists launchable applications from the desktop entries under dirs.
// Earlier directories shadow later ones with the same desktop-file ID.
func Scan(dirs []string) ([]App, error) {
	seen := make(map[string]struct{})
	var apps []App
	for _, root := range dirs {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warnf("catalog: access %s: %v", path, err)
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".desktop") {
				return nil
			}
			id := desktopID(root, path)
			if _, dup := seen[id]; dup {
				return nil
			}
			// A shadowed or hidden entry still claims its ID.
			seen[id] = struct{}{}
			app, ok, perr := parseEntry(path, id)
			if perr != nil {
				logger.Warnf("catalog: parse %s: %v", path, perr)
				return nil
			}
			if ok {
				apps = append(apps, app)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
	return apps, nil
}

func desktopID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(strings.ReplaceAll(rel, "/", "-"), ".desktop")
}

func parseEntry(path, id string) (App, bool, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return App{}, false, err
	}
	sec, err := f.GetSection(entrySection)
	if err != nil {
		return App{}, false, nil
	}
	if t := sec.Key("Type").String(); t != "" && t != "Application" {
		return App{}, false, nil
	}
	if sec.Key("NoDisplay").MustBool(false) || sec.Key("Hidden").MustBool(false) {
		return App{}, false, nil
	}
	execLine := strings.TrimSpace(sec.Key("Exec").String())
	if execLine == "" {
		return App{}, false, nil
	}
	name := strings.TrimSpace(sec.Key("Name").String())
	if name == "" {
		name = id
	}
	return App{
		Name:     name,
		Package:  id,
		Category: Categorize(id, name),
		Exec:     execLine,
		Path:     path,
	}, true, nil
}

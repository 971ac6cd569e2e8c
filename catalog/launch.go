package catalog

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"timeblessed/logger"
)

var (
	ErrUnknownApp = errors.New("unknown app")
	ErrEmptyExec  = errors.New("empty exec line")
)

// ExecLauncher starts apps from their desktop entry Exec line.
type ExecLauncher struct {
	mu    sync.RWMutex
	apps  map[string]App
	start func(name string, args ...string) error
}

func NewExecLauncher(apps []App) *ExecLauncher {
	l := &ExecLauncher{start: startDetached}
	l.Update(apps)
	return l
}

// Update replaces the known apps after a rescan.
func (l *ExecLauncher) Update(apps []App) {
	m := make(map[string]App, len(apps))
	for _, a := range apps {
		m[a.Package] = a
	}
	l.mu.Lock()
	l.apps = m
	l.mu.Unlock()
}

// Launch starts pkg and returns without waiting for it.
func (l *ExecLauncher) Launch(pkg string) error {
	l.mu.RLock()
	app, ok := l.apps[pkg]
	l.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownApp, pkg)
	}
	args := ExecArgs(app.Exec)
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyExec, pkg)
	}
	if err := l.start(args[0], args[1:]...); err != nil {
		return fmt.Errorf("launch %s: %w", pkg, err)
	}
	logger.L.Info().Str("package", pkg).Str("exec", args[0]).Msg("launched app")
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// ExecArgs splits an Exec value into argv, honouring double quotes and
// dropping field codes such as %f and %U.
func ExecArgs(line string) []string {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		hasArg  bool
	)
	flush := func() {
		if hasArg {
			args = append(args, cur.String())
		}
		cur.Reset()
		hasArg = false
	}
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\' && i+1 < len(rs):
			i++
			cur.WriteRune(rs[i])
			hasArg = true
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case (r == ' ' || r == '\t') && !inQuote:
			flush()
		case r == '%' && i+1 < len(rs):
			i++
			if rs[i] == '%' {
				cur.WriteRune('%')
				hasArg = true
			}
		default:
			cur.WriteRune(r)
			hasArg = true
		}
	}
	flush()
	out := args[:0]
	for _, a := range args {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"timeblessed/catalog"
	"timeblessed/cmd/launcher/ui"
	"timeblessed/config"
	"timeblessed/events"
	"timeblessed/logger"
	"timeblessed/service"
	"timeblessed/store"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	launch := flag.String("launch", "", "Launch the app with this identifier if it is available now, then exit")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot load config:", err)
		os.Exit(1)
	}
	// The terminal belongs to the UI, so logs always go to a file.
	if err := logger.Init(cfg.Launcher.LogPath, cfg.Log.Level); err != nil {
		fmt.Fprintln(os.Stderr, "Cannot open log file:", err)
		os.Exit(1)
	}

	db, err := store.OpenAndMigrate(store.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot open database:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	bus := events.New(events.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Channel:  cfg.Redis.Channel,
	})
	defer bus.Close()

	svc := service.New(store.NewRepos(db), bus)

	dirs := cfg.Launcher.AppDirs
	if len(dirs) == 0 {
		dirs = catalog.DefaultDirs()
	}
	scan := func() ([]catalog.App, error) { return catalog.Scan(dirs) }

	apps, err := scan()
	if err != nil {
		logger.Warnf("Initial catalog scan: %v", err)
	}
	launcher := catalog.NewExecLauncher(apps)

	if *launch != "" {
		os.Exit(launchOnce(svc, launcher, *launch))
	}

	var changes <-chan struct{}
	if w, err := catalog.NewWatcher(dirs, 0); err != nil {
		logger.Warnf("Catalog changes will only be picked up on restart: %v", err)
	} else {
		defer w.Close()
		changes = w.Changes()
	}

	var feed <-chan events.Event
	if bus != nil {
		ch, closeSub := bus.Subscribe(ctx)
		defer closeSub()
		feed = ch
	}

	logger.Infof("Launcher started with %d app(s) from %v", len(apps), dirs)

	model := ui.NewRootModel(ui.Deps{
		Ctx:      ctx,
		Launcher: svc,
		Scan:     scan,
		Launch:   launcher.Launch,
		OnApps:   launcher.Update,
		Events:   feed,
		Changes:  changes,
		Refresh:  cfg.Launcher.Refresh,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Errorf("Launcher UI: %v", err)
		fmt.Fprintln(os.Stderr, "Launcher error:", err)
		os.Exit(1)
	}
}

// launchOnce serves notification taps: it opens pkg only inside its window.
func launchOnce(svc *service.Launcher, l *catalog.ExecLauncher, pkg string) int {
	st, err := svc.Status(pkg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot read restriction:", err)
		return 1
	}
	if !st.Visible {
		fmt.Fprintf(os.Stderr, "%s is restricted. %s\n", st.Name, st.Description)
		return 2
	}
	if err := l.Launch(pkg); err != nil {
		fmt.Fprintln(os.Stderr, "Cannot launch:", err)
		return 1
	}
	logger.Infof("Launched %s", pkg)
	return 0
}

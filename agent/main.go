package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"timeblessed/agent/internal/delivery"
	"timeblessed/agent/internal/notifier"
	"timeblessed/config"
	"timeblessed/events"
	"timeblessed/logger"
	"timeblessed/store"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	once := flag.Bool("once", false, "Run a single availability check and exit")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot load config:", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Path, cfg.Log.Level); err != nil {
		fmt.Fprintln(os.Stderr, "Cannot open log file:", err)
	}

	db, err := store.OpenAndMigrate(store.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
	if err != nil {
		logger.Error("Cannot open database:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := delivery.Multi{delivery.LogSink{}}

	bus := events.New(events.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Channel:  cfg.Redis.Channel,
	})
	if bus != nil {
		defer bus.Close()
		if err := bus.Ping(ctx); err != nil {
			logger.Warnf("Redis unreachable at %s, events will be retried per notification: %v", cfg.Redis.Addr, err)
		}
		sinks = append(sinks, delivery.BusSink{Bus: bus})
	}

	if cfg.FCM.CredentialsFile != "" {
		fcm, err := delivery.NewFCMSink(ctx, cfg.FCM.CredentialsFile, cfg.FCM.Tokens)
		if err != nil {
			logger.Warnf("FCM disabled: %v", err)
		} else {
			sinks = append(sinks, fcm)
			logger.Infof("FCM delivery to %d device(s)", len(cfg.FCM.Tokens))
		}
	}

	n := notifier.NewFromRepos(store.NewRepos(db), sinks, notifier.WithInterval(cfg.Agent.Interval))
	if *once {
		if err := n.Check(ctx); err != nil {
			logger.Warnf("availability check: %v", err)
			os.Exit(1)
		}
		return
	}
	n.Run(ctx)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"timeblessed/backend/global"
	"timeblessed/backend/initialize"
	"timeblessed/config"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	debug := flag.Bool("debug", false, "Run gin in debug mode")
	flag.Parse()

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot start backend:", err)
		os.Exit(1)
	}
	defer app.Bus.Close()

	srv := &http.Server{
		Addr:              app.Cfg.API.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		global.Logger.Info().Str("addr", srv.Addr).Msg("control API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			global.Logger.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		global.Logger.Error().Err(err).Msg("shutdown")
	}
}

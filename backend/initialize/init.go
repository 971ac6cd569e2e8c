package initialize

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"timeblessed/backend/app/controllers"
	jwtutil "timeblessed/backend/app/jwt"
	"timeblessed/backend/app/middleware"
	"timeblessed/backend/app/services"
	"timeblessed/backend/global"
	"timeblessed/backend/router"
	"timeblessed/config"
	"timeblessed/events"
	"timeblessed/logger"
	"timeblessed/service"
	"timeblessed/store"
)

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Router   *gin.Engine
	Launcher *service.Launcher
	Auth     *services.AuthService
	Bus      *events.Bus
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg
	if err := initLogger(cfg.Log.Path, cfg.Log.Level); err != nil {
		logger.Warnf("log file unavailable, using stdout: %v", err)
	}

	gdb, err := store.OpenAndMigrate(store.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	bus := events.New(events.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Channel:  cfg.Redis.Channel,
	})
	global.Bus = bus

	app, err := Assemble(gdb, bus, cfg.API)
	if err != nil {
		return nil, err
	}
	app.Cfg = cfg
	return app, nil
}

// Assemble wires repositories, services and controllers over an open database.
func Assemble(gdb *gorm.DB, bus *events.Bus, api config.API) (*App, error) {
	repos := store.NewRepos(gdb)
	var pub events.Publisher
	if bus != nil {
		pub = bus
	}
	launcher := service.New(repos, pub)
	authSvc := services.NewAuthService(repos.Settings)
	if err := authSvc.EnsureAdmin(api.InitialPassword); err != nil {
		return nil, fmt.Errorf("seed admin password: %w", err)
	}

	signer := &jwtutil.Signer{Secret: []byte(api.JWT.Secret), Issuer: api.JWT.Issuer, ExpMin: api.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer}
	h := router.NewRouter(router.Controllers{
		HTTP:         controllers.NewHTTPController(),
		Auth:         controllers.NewAuthController(authSvc, signer),
		Restrictions: controllers.NewRestrictionController(launcher),
		Favorites:    controllers.NewFavoriteController(launcher),
		Preferences:  controllers.NewPreferenceController(launcher),
	}, mw, global.Logger)

	return &App{DB: gdb, Router: h, Launcher: launcher, Auth: authSvc, Bus: bus}, nil
}

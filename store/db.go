package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Driver string
	DSN    string
}

// Open connects to sqlite (DSN is a file path) or mysql.
func Open(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("empty sqlite path")
		}
		if cfg.DSN != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
				return nil, fmt.Errorf("mkdir db dir: %w", err)
			}
		}
		db, err := gorm.Open(sqlite.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	case "mysql":
		db, err := gorm.Open(mysql.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&AppRestriction{}, &FavoriteApp{}, &Setting{})
}

// OpenAndMigrate is the startup path shared by the binaries.
func OpenAndMigrate(cfg Config) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Repos bundles the repositories over one connection.
type Repos struct {
	Restrictions *RestrictionRepository
	Favorites    *FavoriteRepository
	Settings     *SettingRepository
	Preferences  *PreferenceRepository
}

func NewRepos(db *gorm.DB) *Repos {
	settings := NewSettingRepository(db)
	return &Repos{
		Restrictions: NewRestrictionRepository(db),
		Favorites:    NewFavoriteRepository(db),
		Settings:     settings,
		Preferences:  NewPreferenceRepository(settings),
	}
}

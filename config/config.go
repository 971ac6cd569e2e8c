package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultPath = "config/config.yaml"

type Storage struct {
	Driver string // sqlite or mysql
	DSN    string
}

type Log struct {
	Path  string
	Level string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type Agent struct {
	Interval time.Duration
}

type FCM struct {
	CredentialsFile string
	Tokens          []string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

type API struct {
	Host            string
	Port            int
	InitialPassword string
	JWT             JWT
}

type Launcher struct {
	AppDirs []string
	Refresh time.Duration
	LogPath string
}

type Config struct {
	Storage  Storage
	Log      Log
	Redis    Redis
	Agent    Agent
	FCM      FCM
	API      API
	Launcher Launcher
}

// Addr is the host:port the control API listens on.
func (c API) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Enabled reports whether a redis server is configured.
func (r Redis) Enabled() bool { return strings.TrimSpace(r.Addr) != "" }

// Load reads path (a missing file is fine), then .env, then TIMEBLESSED_* variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TIMEBLESSED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Storage: Storage{Driver: strings.ToLower(v.GetString("storage.driver")), DSN: v.GetString("storage.dsn")},
		Log:     Log{Path: v.GetString("log.path"), Level: v.GetString("log.level")},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Channel:  v.GetString("redis.channel"),
		},
		Agent: Agent{Interval: v.GetDuration("agent.interval")},
		FCM:   FCM{CredentialsFile: v.GetString("fcm.credentials_file"), Tokens: v.GetStringSlice("fcm.tokens")},
		API: API{
			Host:            v.GetString("api.host"),
			Port:            v.GetInt("api.port"),
			InitialPassword: v.GetString("api.initial_password"),
			JWT: JWT{
				Secret: v.GetString("api.jwt.secret"),
				Issuer: v.GetString("api.jwt.issuer"),
				ExpMin: v.GetInt("api.jwt.exp_min"),
			},
		},
		Launcher: Launcher{
			AppDirs: v.GetStringSlice("launcher.app_dirs"),
			Refresh: v.GetDuration("launcher.refresh"),
			LogPath: v.GetString("launcher.log_path"),
		},
	}

	if cfg.Storage.Driver != "sqlite" && cfg.Storage.Driver != "mysql" {
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	if cfg.Agent.Interval <= 0 {
		cfg.Agent.Interval = time.Minute
	}
	if cfg.Launcher.Refresh <= 0 {
		cfg.Launcher.Refresh = time.Minute
	}
	if cfg.API.JWT.ExpMin <= 0 {
		cfg.API.JWT.ExpMin = 60
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := defaultDataDir()
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", filepath.Join(dataDir, "timeblessed.db"))
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "timeblessed:events")
	v.SetDefault("agent.interval", time.Minute)
	v.SetDefault("fcm.credentials_file", "")
	v.SetDefault("fcm.tokens", []string{})
	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 9400)
	v.SetDefault("api.initial_password", "admin123")
	v.SetDefault("api.jwt.secret", "dev-secret")
	v.SetDefault("api.jwt.issuer", "timeblessed")
	v.SetDefault("api.jwt.exp_min", 60)
	v.SetDefault("launcher.app_dirs", []string{})
	v.SetDefault("launcher.refresh", time.Minute)
	v.SetDefault("launcher.log_path", filepath.Join(dataDir, "launcher.log"))
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "timeblessed")
	}
	return filepath.Join(os.TempDir(), "timeblessed")
}

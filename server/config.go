package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/topi314/academy-dashboard/internal/xtime"
	"github.com/topi314/academy-dashboard/server/auth"
	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/database"
	"github.com/topi314/academy-dashboard/server/notify"
)

func LoadConfig(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	cfg := defaultConfig()
	if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr:           ":8086",
			SessionTTL:     xtime.Duration(24 * time.Hour),
			MaxSessions:    10000,
			LogoutRedirect: "/login",
		},
		Auth: auth.Config{
			CookieName: "dashboard_session",
			Leeway:     xtime.Duration(30 * time.Second),
		},
		Backend: backend.Config{
			Timeout:    xtime.Duration(10 * time.Second),
			Every:      xtime.Duration(50 * time.Millisecond),
			Burst:      20,
			MaxRetries: 3,
			RetryDelay: xtime.Duration(2 * time.Second),
		},
		Cache: CacheConfig{
			Driver: CacheDriverMemory,
			TTL:    xtime.Duration(12 * time.Hour),
			Database: database.Config{
				Host:     "localhost",
				Port:     5432,
				Username: "postgres",
				Password: "password",
				Database: "academy-dashboard",
				SSLMode:  "disable",
			},
		},
		Dashboard: DashboardConfig{
			LoadingTimeout:       xtime.Duration(10 * time.Second),
			ReconcileDelay:       xtime.Duration(500 * time.Millisecond),
			HistoryPerPage:       10,
			RequestsPerPage:      10,
			MaxConcurrentFetches: 4,
		},
	}
}

type Config struct {
	Dev           bool            `toml:"dev"`
	Log           LogConfig       `toml:"log"`
	Server        ServerConfig    `toml:"server"`
	Auth          auth.Config     `toml:"auth"`
	Backend       backend.Config  `toml:"backend"`
	Cache         CacheConfig     `toml:"cache"`
	Dashboard     DashboardConfig `toml:"dashboard"`
	Notifications notify.Config   `toml:"notifications"`
}

func (c Config) String() string {
	return fmt.Sprintf("Dev: %t\nLog: %s\nServer: %s\nAuth: %s\nBackend: %s\nCache: %s\nDashboard: %s\nNotifications: %s",
		c.Dev,
		c.Log,
		c.Server,
		c.Auth,
		c.Backend,
		c.Cache,
		c.Dashboard,
		c.Notifications,
	)
}

func (c Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	switch c.Cache.Driver {
	case CacheDriverMemory, CacheDriverPostgres:
	default:
		return fmt.Errorf("unknown cache.driver %q", c.Cache.Driver)
	}
	switch c.Log.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level         slog.Level `toml:"level"`
	Format        LogFormat  `toml:"format"`
	AddSource     bool       `toml:"add_source"`
	BackendBodies bool       `toml:"backend_bodies"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t\n BackendBodies: %t",
		c.Level,
		c.Format,
		c.AddSource,
		c.BackendBodies,
	)
}

type ServerConfig struct {
	Addr           string         `toml:"addr"`
	SessionTTL     xtime.Duration `toml:"session_ttl"`
	MaxSessions    int            `toml:"max_sessions"`
	LogoutRedirect string         `toml:"logout_redirect"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s\n SessionTTL: %s\n MaxSessions: %d\n LogoutRedirect: %s",
		c.Addr,
		c.SessionTTL,
		c.MaxSessions,
		c.LogoutRedirect,
	)
}

type CacheDriver string

const (
	CacheDriverMemory   CacheDriver = "memory"
	CacheDriverPostgres CacheDriver = "postgres"
)

type CacheConfig struct {
	Driver   CacheDriver     `toml:"driver"`
	TTL      xtime.Duration  `toml:"ttl"`
	Database database.Config `toml:"database"`
}

func (c CacheConfig) String() string {
	return fmt.Sprintf("\n Driver: %s\n TTL: %s\n Database: %s",
		c.Driver,
		c.TTL,
		c.Database,
	)
}

type DashboardConfig struct {
	LoadingTimeout       xtime.Duration `toml:"loading_timeout"`
	ReconcileDelay       xtime.Duration `toml:"reconcile_delay"`
	HistoryPerPage       int            `toml:"history_per_page"`
	RequestsPerPage      int            `toml:"requests_per_page"`
	MaxConcurrentFetches int            `toml:"max_concurrent_fetches"`
}

func (c DashboardConfig) String() string {
	return fmt.Sprintf("\n LoadingTimeout: %s\n ReconcileDelay: %s\n HistoryPerPage: %d\n RequestsPerPage: %d\n MaxConcurrentFetches: %d",
		c.LoadingTimeout,
		c.ReconcileDelay,
		c.HistoryPerPage,
		c.RequestsPerPage,
		c.MaxConcurrentFetches,
	)
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Backend names
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the server configuration, read from the environment
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"             envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	SecureCookies   bool          `env:"SECURE_COOKIES"        envDefault:"false"`
	// StaticDir is served under /static/ when set
	StaticDir string `env:"STATIC_DIR"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StorageType selects the relational store: memory or postgres
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	DatabaseURL string `env:"DATABASE_URL"`

	// SessionStore selects where sessions live: memory or redis
	SessionStore string        `env:"SESSION_STORE" envDefault:"memory"`
	RedisURL     string        `env:"REDIS_URL"`
	SessionTTL   time.Duration `env:"SESSION_TTL"   envDefault:"168h"`

	InviteTTL     time.Duration `env:"INVITE_TTL"     envDefault:"168h"`
	NotifyURL     string        `env:"NOTIFY_URL"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`

	// Bootstrap creates a first club and superadmin on startup when set
	Bootstrap Bootstrap `envPrefix:"BOOTSTRAP_"`
}

// Bootstrap seeds an empty deployment
type Bootstrap struct {
	ClubName        string `env:"CLUB_NAME"`
	ClubCode        string `env:"CLUB_CODE"`
	SuperadminEmail string `env:"SUPERADMIN_EMAIL"`
	SuperadminPass  string `env:"SUPERADMIN_PASSWORD"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that each selected backend has what it needs
func (c Config) Validate() error {
	var errs []error

	switch c.StorageType {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL required when STORAGE_TYPE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid STORAGE_TYPE %q: must be memory or postgres", c.StorageType))
	}

	switch c.SessionStore {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when SESSION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid SESSION_STORE %q: must be memory or redis", c.SessionStore))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.InviteTTL <= 0 {
		errs = append(errs, errors.New("INVITE_TTL must be positive"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if b := c.Bootstrap; (b.SuperadminEmail == "") != (b.SuperadminPass == "") {
		errs = append(errs, errors.New("BOOTSTRAP_SUPERADMIN_EMAIL and BOOTSTRAP_SUPERADMIN_PASSWORD must be set together"))
	}

	return errors.Join(errs...)
}

// Level returns the configured slog level
func (c Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

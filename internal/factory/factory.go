package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/clock"
	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/random"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/notify"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/guard"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/registration"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/session"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage/memory"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage/postgres"
	redisstorage "github.com/ricardozepinto10/NextGenAcademy/internal/storage/redis"
)

// Backend names
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"
	SessionStoreMemory  = "memory"
	SessionStoreRedis   = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStore

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Notifier notify.Notifier

	// Services
	AuthService         *auth.Service
	SessionProvider     *session.Provider
	Guard               *guard.Guard
	InvitationService   *invitation.Service
	RegistrationService *registration.Service
	ClubService         *club.Service

	Logger  *slog.Logger
	closers []func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the relational store ("memory" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// DatabaseURL is the Postgres DSN (required if StorageType is "postgres")
	DatabaseURL string
	// SessionStore selects the session backend ("memory" or "redis")
	SessionStore string
	// RedisConfig holds Redis connection settings (required if SessionStore is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig and InvitationConfig fall back to their defaults when zero
	AuthConfig       auth.Config
	InvitationConfig invitation.Config
	// NotifyURL is the notification endpoint. When empty, notifications are only logged.
	NotifyURL     string
	NotifyTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	var store storage.Storage
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		store = memory.New()
	case StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is postgres")
		}
		pg, db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		closers = append(closers, db.Close)
		store = pg
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'postgres'")
	}

	var sessions storage.SessionStore
	switch cfg.SessionStore {
	case "", SessionStoreMemory:
		sessions = memory.NewSessionStore()
	case SessionStoreRedis:
		if cfg.RedisConfig == nil {
			closeAll()
			return nil, errors.New("RedisConfig required when SessionStore is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			closeAll()
			return nil, err
		}
		closers = append(closers, redisStore.Close)
		sessions = redisStore
	default:
		closeAll()
		return nil, errors.New("invalid SessionStore: must be 'memory' or 'redis'")
	}

	var notifier notify.Notifier
	if cfg.NotifyURL != "" {
		notifier = notify.NewHTTP(cfg.NotifyURL, cfg.NotifyTimeout)
	} else {
		notifier = notify.NewLog(logger)
	}

	app := newWithDependencies(deps{
		store:         store,
		sessions:      sessions,
		clock:         clk,
		random:        random.New(),
		notifier:      notifier,
		authCfg:       cfg.AuthConfig,
		invitationCfg: cfg.InvitationConfig,
		logger:        logger,
	})
	app.closers = closers
	return app, nil
}

type deps struct {
	store         storage.Storage
	sessions      storage.SessionStore
	clock         clock.Clock
	random        random.Random
	notifier      notify.Notifier
	authCfg       auth.Config
	invitationCfg invitation.Config
	logger        *slog.Logger
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(d deps) *App {
	authService := auth.New(d.store, d.sessions, d.clock, d.random, d.logger, d.authCfg)
	provider := session.New(authService, d.store, d.logger)

	return &App{
		Storage:             d.store,
		Sessions:            d.sessions,
		Clock:               d.clock,
		Random:              d.random,
		Notifier:            d.notifier,
		AuthService:         authService,
		SessionProvider:     provider,
		Guard:               guard.New(provider, d.logger),
		InvitationService:   invitation.New(d.store, d.notifier, d.clock, d.random, d.logger, d.invitationCfg),
		RegistrationService: registration.New(authService, d.store, d.clock, d.logger),
		ClubService:         club.New(d.store, d.clock, d.logger),
		Logger:              d.logger,
	}
}

// Close releases database and cache connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Bootstrap describes the first club and superadmin of a fresh deployment
type Bootstrap struct {
	ClubName           string
	ClubCode           string
	SuperadminEmail    string
	SuperadminPassword string
}

// Bootstrap creates the configured club and superadmin unless they already
// exist. It is safe to run on every start.
func (a *App) Bootstrap(ctx context.Context, b Bootstrap) error {
	if b.ClubCode != "" {
		name := b.ClubName
		if name == "" {
			name = b.ClubCode
		}
		c, err := a.ClubService.CreateClub(ctx, name, b.ClubCode)
		switch {
		case err == nil:
			a.Logger.Info("bootstrap club created", slog.String("code", c.Code))
		case errors.Is(err, model.ErrClubCodeExists):
		default:
			return fmt.Errorf("bootstrap club: %w", err)
		}
	}

	if b.SuperadminEmail == "" {
		return nil
	}
	identity, err := a.AuthService.SignUp(ctx, b.SuperadminEmail, b.SuperadminPassword,
		model.IdentityMetadata{Role: model.RoleSuperAdmin})
	if errors.Is(err, model.ErrEmailExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap superadmin: %w", err)
	}
	if err := a.Storage.UpdateProfile(ctx, &model.Profile{
		ID:        identity.ID,
		Role:      model.RoleSuperAdmin,
		UpdatedAt: a.Clock.Now(),
	}); err != nil {
		return fmt.Errorf("bootstrap superadmin profile: %w", err)
	}
	a.Logger.Info("bootstrap superadmin created", slog.String("email", identity.Email))
	return nil
}

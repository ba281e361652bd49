package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api"
	"github.com/ricardozepinto10/NextGenAcademy/internal/config"
	"github.com/ricardozepinto10/NextGenAcademy/internal/factory"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
	redisstorage "github.com/ricardozepinto10/NextGenAcademy/internal/storage/redis"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factoryCfg := factory.Config{
		Logger:        logger,
		StorageType:   cfg.StorageType,
		DatabaseURL:   cfg.DatabaseURL,
		SessionStore:  cfg.SessionStore,
		NotifyURL:     cfg.NotifyURL,
		NotifyTimeout: cfg.NotifyTimeout,
	}
	factoryCfg.AuthConfig = auth.DefaultConfig()
	factoryCfg.AuthConfig.SessionDuration = cfg.SessionTTL
	factoryCfg.InvitationConfig = invitation.DefaultConfig()
	factoryCfg.InvitationConfig.TTL = cfg.InviteTTL

	if cfg.SessionStore == config.BackendRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.SessionTTL = cfg.SessionTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close backends", slog.String("error", err.Error()))
		}
	}()

	if err := app.Bootstrap(ctx, factory.Bootstrap{
		ClubName:           cfg.Bootstrap.ClubName,
		ClubCode:           cfg.Bootstrap.ClubCode,
		SuperadminEmail:    cfg.Bootstrap.SuperadminEmail,
		SuperadminPassword: cfg.Bootstrap.SuperadminPass,
	}); err != nil {
		return err
	}

	// API first, then pages; the web router owns the 404 handler
	r := mux.NewRouter()
	api.Mount(r, api.RouterConfig{
		Logger:              logger,
		Guard:               app.Guard,
		AuthService:         app.AuthService,
		SessionProvider:     app.SessionProvider,
		RegistrationService: app.RegistrationService,
		InvitationService:   app.InvitationService,
		ClubService:         app.ClubService,
	})
	web.Mount(r, web.RouterConfig{
		Logger:              logger,
		Guard:               app.Guard,
		AuthService:         app.AuthService,
		RegistrationService: app.RegistrationService,
		InvitationService:   app.InvitationService,
		ClubService:         app.ClubService,
		SecureCookies:       cfg.SecureCookies,
		StaticDir:           cfg.StaticDir,
	})

	server := api.NewServer(r, api.ServerConfig{
		Addr:            cfg.HTTPAddr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.String("sessions", cfg.SessionStore))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	if err := server.Shutdown(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

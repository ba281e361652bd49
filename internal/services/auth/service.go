package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/clock"
	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/random"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid login credentials", model.ErrAuth)
	ErrInvalidSession     = fmt.Errorf("%w: invalid or expired session", model.ErrAuth)
	ErrInvalidEmail       = model.ErrInvalidEmail
	ErrWeakPassword       = fmt.Errorf("%w: password is too short", model.ErrValidation)
)

const sessionTokenBytes = 32

// Config holds configuration for the auth service
type Config struct {
	SessionDuration   time.Duration
	MinPasswordLength int
	// BcryptCost defaults to bcrypt.DefaultCost. Tests lower it to bcrypt.MinCost.
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration:   7 * 24 * time.Hour,
		MinPasswordLength: 6,
		BcryptCost:        bcrypt.DefaultCost,
	}
}

// Service is the identity and session subsystem: it owns accounts, password
// hashes and session tokens.
type Service struct {
	storage  storage.Storage
	sessions storage.SessionStore
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	cfg      Config
}

// New creates a new auth Service
func New(
	store storage.Storage,
	sessions storage.SessionStore,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	cfg Config,
) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.MinPasswordLength == 0 {
		cfg.MinPasswordLength = defaults.MinPasswordLength
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage:  store,
		sessions: sessions,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "auth-service")),
		cfg:      cfg,
	}
}

// SignUp creates an identity together with its blank guest profile.
// The metadata is recorded on the identity. It does not sign the user in.
func (s *Service) SignUp(ctx context.Context, email, password string, metadata model.IdentityMetadata) (*model.Identity, error) {
	email, err := model.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < s.cfg.MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	identity := &model.Identity{
		ID:           model.UserID(uuid.NewString()),
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     metadata,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.CreateIdentity(ctx, identity); err != nil {
		return nil, err
	}

	s.logger.Info("identity created",
		slog.String("user_id", string(identity.ID)),
		slog.String("email", identity.Email))
	return identity, nil
}

// SignInWithPassword verifies credentials and issues a new session
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	identity, err := s.storage.GetIdentityByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	session := &model.Session{
		Token:     s.random.Token(sessionTokenBytes),
		UserID:    identity.ID,
		Email:     identity.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// GetSession returns the live session for token. Unknown and expired tokens
// yield ErrInvalidSession.
func (s *Service) GetSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if !s.clock.Now().Before(session.ExpiresAt) {
		if err := s.sessions.DeleteSession(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired session", slog.Any("error", err))
		}
		return nil, ErrInvalidSession
	}
	return session, nil
}

// SignOut invalidates a single session. Unknown tokens are not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SignOutEverywhere invalidates every session belonging to userID
func (s *Service) SignOutEverywhere(ctx context.Context, userID model.UserID) error {
	if err := s.sessions.DeleteSessionsForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

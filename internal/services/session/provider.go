package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
)

// SessionSource resolves a token to a live session
type SessionSource interface {
	GetSession(ctx context.Context, token string) (*model.Session, error)
}

// ProfileSource loads the profile row for an identity
type ProfileSource interface {
	GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error)
}

// Provider answers "who is the current user" for a request. It never fails:
// lookup problems degrade to no user or to a guest.
type Provider struct {
	sessions SessionSource
	profiles ProfileSource
	logger   *slog.Logger
}

// New creates a new Provider
func New(sessions SessionSource, profiles ProfileSource, logger *slog.Logger) *Provider {
	return &Provider{
		sessions: sessions,
		profiles: profiles,
		logger:   logger.With(slog.String("component", "session-provider")),
	}
}

// CurrentUser returns the user behind token, or nil when there is no valid
// session. A missing or unreadable profile yields a user with role guest.
func (p *Provider) CurrentUser(ctx context.Context, token string) *model.User {
	if token == "" || ctx.Err() != nil {
		return nil
	}

	session, err := p.sessions.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, model.ErrAuth) {
			p.logger.Warn("session lookup failed", slog.Any("error", err))
		}
		return nil
	}
	if session == nil || ctx.Err() != nil {
		return nil
	}

	user := &model.User{
		ID:    session.UserID,
		Email: session.Email,
		Role:  model.RoleGuest,
	}

	profile, err := p.profiles.GetProfile(ctx, session.UserID)
	if err != nil || profile == nil {
		if ctx.Err() != nil {
			return nil
		}
		p.logger.Debug("profile unavailable, treating user as guest",
			slog.String("user_id", string(session.UserID)),
			slog.Any("error", err))
		return user
	}

	if profile.Role.Valid() {
		user.Role = profile.Role
	}
	user.ClubID = profile.ClubID
	user.FirstName = profile.FirstName
	user.LastName = profile.LastName
	return user
}

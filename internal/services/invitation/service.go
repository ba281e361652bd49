package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/clock"
	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/random"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/notify"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage"
)

// Subject is the subject line of invitation notifications
const Subject = "NextGen Academy Invitation"

const maxCodeAttempts = 5

// ErrCodeSpaceExhausted is returned when every generated code collided
var ErrCodeSpaceExhausted = fmt.Errorf("%w: could not allocate a unique invite code", model.ErrPersistence)

// Config holds configuration for the invitation service
type Config struct {
	TTL        time.Duration
	CodeLength int
}

// DefaultConfig returns default invitation configuration
func DefaultConfig() Config {
	return Config{
		TTL:        7 * 24 * time.Hour,
		CodeLength: 8,
	}
}

// Result is the outcome of a successful SendInvitation
type Result struct {
	Invitation *model.Invitation
	// Notified is false when the invitation was stored but the notification
	// could not be delivered
	Notified bool
}

// Service issues invitations and notifies invitees
type Service struct {
	storage  storage.Storage
	notifier notify.Notifier
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	cfg      Config
}

// New creates a new invitation Service
func New(
	store storage.Storage,
	notifier notify.Notifier,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	cfg Config,
) *Service {
	defaults := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = defaults.CodeLength
	}
	return &Service{
		storage:  store,
		notifier: notifier,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "invitation-service")),
		cfg:      cfg,
	}
}

// InvitableRole reports whether an invitation may grant role
func InvitableRole(role model.Role) bool {
	switch role {
	case model.RoleMember, model.RoleStaff, model.RoleAdmin:
		return true
	default:
		return false
	}
}

// SendInvitation stores a new invitation for email to join clubID as role,
// then notifies the invitee. Nothing is sent if the store write fails.
// A failed notification is logged and reported through Result.Notified.
func (s *Service) SendInvitation(ctx context.Context, email string, clubID model.ClubID, role model.Role) (*Result, error) {
	email, err := model.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if !InvitableRole(role) {
		return nil, model.ErrInvalidRole
	}
	if _, err := s.storage.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	inv, err := s.store(ctx, email, clubID, role)
	if err != nil {
		s.logger.Error("failed to save invitation",
			slog.String("email", email),
			slog.Int64("club_id", int64(clubID)),
			slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("invitation created",
		slog.String("email", inv.Email),
		slog.Int64("club_id", int64(inv.ClubID)),
		slog.String("role", string(inv.Role)),
		slog.Time("expires_at", inv.ExpiresAt))

	result := &Result{Invitation: inv, Notified: true}
	if err := s.notifier.Send(ctx, Message(inv)); err != nil {
		result.Notified = false
		s.logger.Warn("invitation notification failed",
			slog.String("email", inv.Email),
			slog.Any("error", err))
	}
	return result, nil
}

// store persists a fresh invitation, drawing a new code on collision
func (s *Service) store(ctx context.Context, email string, clubID model.ClubID, role model.Role) (*model.Invitation, error) {
	now := s.clock.Now()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		inv := &model.Invitation{
			Email:      email,
			ClubID:     clubID,
			Role:       role,
			InviteCode: s.random.String(s.cfg.CodeLength, random.Alphanumeric),
			ExpiresAt:  now.Add(s.cfg.TTL),
			CreatedAt:  now,
		}
		err := s.storage.SaveInvitation(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, model.ErrInviteCodeExists) {
			return nil, fmt.Errorf("%w: save invitation: %w", model.ErrPersistence, err)
		}
	}
	return nil, ErrCodeSpaceExhausted
}

// Message builds the notification sent for inv
func Message(inv *model.Invitation) notify.Message {
	return notify.Message{
		To:      inv.Email,
		Subject: Subject,
		Text: fmt.Sprintf("You have been invited to join a club as a %s.\n\nUse this code to register: %s",
			inv.Role, inv.InviteCode),
	}
}

// ListInvitations returns a club's invitations, newest first
func (s *Service) ListInvitations(ctx context.Context, clubID model.ClubID) ([]*model.Invitation, error) {
	if _, err := s.storage.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.storage.ListInvitationsForClub(ctx, clubID)
}

package registration

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/clock"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage"
)

// Accounts is the identity subsystem used to create and sign in accounts
type Accounts interface {
	SignUp(ctx context.Context, email, password string, metadata model.IdentityMetadata) (*model.Identity, error)
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)
}

// Input is a self-service registration request. When InviteCode is set the
// invitation decides the club and role, and Code and Role are ignored.
// Otherwise Role may only be empty or member.
type Input struct {
	Email      string
	Password   string
	Code       string
	FirstName  string
	LastName   string
	Role       model.Role
	InviteCode string
}

// Service runs the registration and login workflows
type Service struct {
	accounts Accounts
	storage  storage.Storage
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new registration Service
func New(accounts Accounts, store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		storage:  store,
		clock:    clk,
		logger:   logger.With(slog.String("component", "registration-service")),
	}
}

// Register enrolls a new user into a club. Each step must succeed before
// the next runs:
//  1. resolve the club from the enrollment code (or the invitation)
//  2. create the account
//  3. fill in the account's profile
//
// A profile failure leaves the account in place. The orphaned identity is
// logged so it can be repaired by hand.
func (s *Service) Register(ctx context.Context, in Input) (*model.Identity, error) {
	var (
		clubID     model.ClubID
		role       model.Role
		invitation *model.Invitation
		err        error
	)

	if in.InviteCode != "" {
		invitation, err = s.redeemable(ctx, in.InviteCode, in.Email)
		if err != nil {
			return nil, err
		}
		clubID, role = invitation.ClubID, invitation.Role
	} else {
		club, err := s.storage.GetClubByCode(ctx, strings.ToUpper(strings.TrimSpace(in.Code)))
		if err != nil {
			if !errors.Is(err, model.ErrClubNotFound) {
				s.logger.Warn("club lookup failed", slog.Any("error", err))
			}
			return nil, fail(InvalidClubCode, "Invalid club code. Please enter a valid code.", err)
		}
		clubID = club.ID
		role, err = selfAssignedRole(in.Role)
		if err != nil {
			return nil, err
		}
	}

	identity, err := s.accounts.SignUp(ctx, in.Email, in.Password, model.IdentityMetadata{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		ClubID:    clubID,
		Role:      role,
	})
	if err != nil {
		return nil, fail(AccountCreationFailed, "Error creating user account. "+upstreamMessage(err), err)
	}

	err = s.storage.UpdateProfile(ctx, &model.Profile{
		ID:        identity.ID,
		Role:      role,
		ClubID:    clubID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		UpdatedAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Error("profile update failed after account creation",
			slog.String("orphan_user_id", string(identity.ID)),
			slog.String("email", identity.Email),
			slog.Any("error", err))
		return identity, fail(ProfileUpdateFailed, "Account created but the profile could not be saved.", err)
	}

	if invitation != nil {
		if err := s.storage.ConsumeInvitation(ctx, invitation.InviteCode, s.clock.Now()); err != nil {
			s.logger.Warn("failed to mark invitation consumed",
				slog.String("email", invitation.Email),
				slog.Int64("club_id", int64(invitation.ClubID)),
				slog.Any("error", err))
		}
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(identity.ID)),
		slog.Int64("club_id", int64(clubID)),
		slog.String("role", string(role)),
		slog.Bool("invited", invitation != nil))
	return identity, nil
}

// redeemable loads an invitation and checks that email may use it now
func (s *Service) redeemable(ctx context.Context, code, email string) (*model.Invitation, error) {
	const msg = "Invalid or expired invite code."

	inv, err := s.storage.GetInvitationByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fail(InvalidInviteCode, msg, err)
	}
	switch {
	case inv.Consumed():
		return nil, fail(InvalidInviteCode, "This invite code has already been used.", model.ErrInvitationConsumed)
	case inv.Expired(s.clock.Now()):
		return nil, fail(InvalidInviteCode, msg, model.ErrInvitationExpired)
	case !strings.EqualFold(inv.Email, strings.TrimSpace(email)):
		return nil, fail(InvalidInviteCode, "This invite code was issued to a different email.", model.ErrInvitationEmailMatch)
	}
	if _, err := s.storage.GetClub(ctx, inv.ClubID); err != nil {
		return nil, fail(InvalidInviteCode, msg, err)
	}
	return inv, nil
}

// selfAssignedRole is the role granted on the club code path. The code is
// shared publicly, so elevated roles only come through invitations.
func selfAssignedRole(role model.Role) (model.Role, error) {
	if role != "" && role != model.RoleMember {
		return "", fail(InvalidRole, "Invalid role.", model.ErrInvalidRole)
	}
	return model.RoleMember, nil
}

// upstreamMessage strips the taxonomy prefix from a sentinel message
func upstreamMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// Login signs a user in with email and password
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	session, err := s.accounts.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", slog.String("user_id", string(session.UserID)))
	return session, nil
}

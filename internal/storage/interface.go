package storage

import (
	"context"
	"time"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
)

// Storage defines the interface for relational data persistence
type Storage interface {
	// Identity operations.
	// CreateIdentity also inserts the identity's blank profile row (role guest)
	// so that every identity has exactly one profile.
	CreateIdentity(ctx context.Context, identity *model.Identity) error
	GetIdentity(ctx context.Context, id model.UserID) (*model.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*model.Identity, error)

	// Profile operations
	GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	ListProfilesForClub(ctx context.Context, clubID model.ClubID, role model.Role) ([]*model.Profile, error)

	// Club operations
	CreateClub(ctx context.Context, club *model.Club) error
	GetClub(ctx context.Context, id model.ClubID) (*model.Club, error)
	GetClubByCode(ctx context.Context, code string) (*model.Club, error)
	ListClubs(ctx context.Context) ([]*model.Club, error)

	// Invitation operations
	SaveInvitation(ctx context.Context, invitation *model.Invitation) error
	GetInvitationByCode(ctx context.Context, code string) (*model.Invitation, error)
	ListInvitationsForClub(ctx context.Context, clubID model.ClubID) ([]*model.Invitation, error)
	ConsumeInvitation(ctx context.Context, code string, at time.Time) error

	// Team operations
	CreateTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeamsForClub(ctx context.Context, clubID model.ClubID) ([]*model.Team, error)
	DeleteTeam(ctx context.Context, id model.TeamID) error

	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayersForClub(ctx context.Context, clubID model.ClubID) ([]*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
}

// SessionStore persists auth sessions keyed by token
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteSessionsForUser(ctx context.Context, userID model.UserID) error
}

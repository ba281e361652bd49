package club

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/clock"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage"
)

// Validation errors
var (
	ErrNameRequired = fmt.Errorf("%w: name is required", model.ErrValidation)
	ErrCodeRequired = fmt.Errorf("%w: club code is required", model.ErrValidation)
	ErrCodeFormat   = fmt.Errorf("%w: club code must be 3-16 letters, digits or dashes", model.ErrValidation)
)

// Service is the club directory: clubs, their teams, players and staff
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new club Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "club-service")),
	}
}

// Authorize reports whether user may manage clubID. Superadmins may manage
// every club, everyone else only their own.
func Authorize(user *model.User, clubID model.ClubID) error {
	if user == nil {
		return model.ErrForbidden
	}
	if user.Role == model.RoleSuperAdmin || (user.ClubID != 0 && user.ClubID == clubID) {
		return nil
	}
	return model.ErrForbidden
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrCodeRequired
	}
	if len(code) < 3 || len(code) > 16 {
		return "", ErrCodeFormat
	}
	for _, r := range code {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return "", ErrCodeFormat
		}
	}
	return code, nil
}

// CreateClub registers a club under a unique enrollment code.
// Codes are stored upper-case.
func (s *Service) CreateClub(ctx context.Context, name, code string) (*model.Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	club := &model.Club{Code: code, Name: name, CreatedAt: s.clock.Now()}
	if err := s.storage.CreateClub(ctx, club); err != nil {
		return nil, err
	}

	s.logger.Info("club created",
		slog.Int64("club_id", int64(club.ID)),
		slog.String("code", club.Code))
	return club, nil
}

func (s *Service) GetClub(ctx context.Context, id model.ClubID) (*model.Club, error) {
	return s.storage.GetClub(ctx, id)
}

func (s *Service) ListClubs(ctx context.Context) ([]*model.Club, error) {
	return s.storage.ListClubs(ctx)
}

// Teams

func (s *Service) CreateTeam(ctx context.Context, clubID model.ClubID, name, ageGroup string) (*model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.storage.GetClub(ctx, clubID); err != nil {
		return nil, err
	}

	team := &model.Team{
		ClubID:    clubID,
		Name:      name,
		AgeGroup:  strings.TrimSpace(ageGroup),
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Service) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return s.storage.GetTeam(ctx, id)
}

func (s *Service) ListTeams(ctx context.Context, clubID model.ClubID) ([]*model.Team, error) {
	if _, err := s.storage.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.storage.ListTeamsForClub(ctx, clubID)
}

// DeleteTeam removes a team. Its players stay in the club, unassigned.
func (s *Service) DeleteTeam(ctx context.Context, id model.TeamID) error {
	if err := s.storage.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.logger.Info("team deleted", slog.Int64("team_id", int64(id)))
	return nil
}

// Players

// PlayerInput describes a player to add to a club
type PlayerInput struct {
	TeamID    *model.TeamID
	FirstName string
	LastName  string
	Position  string
	BirthDate *time.Time
}

// CreatePlayer adds a player to clubID. A team, if given, must belong to the same club.
func (s *Service) CreatePlayer(ctx context.Context, clubID model.ClubID, in PlayerInput) (*model.Player, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.storage.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	if in.TeamID != nil {
		team, err := s.storage.GetTeam(ctx, *in.TeamID)
		if err != nil {
			return nil, err
		}
		if team.ClubID != clubID {
			return nil, model.ErrTeamNotFound
		}
	}

	player := &model.Player{
		ClubID:    clubID,
		TeamID:    in.TeamID,
		FirstName: firstName,
		LastName:  strings.TrimSpace(in.LastName),
		Position:  strings.TrimSpace(in.Position),
		BirthDate: in.BirthDate,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

func (s *Service) ListPlayers(ctx context.Context, clubID model.ClubID) ([]*model.Player, error) {
	if _, err := s.storage.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.storage.ListPlayersForClub(ctx, clubID)
}

func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}
	s.logger.Info("player deleted", slog.Int64("player_id", int64(id)))
	return nil
}

// ListStaff returns the profiles of a club's staff members
func (s *Service) ListStaff(ctx context.Context, clubID model.ClubID) ([]*model.Profile, error) {
	if _, err := s.storage.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.storage.ListProfilesForClub(ctx, clubID, model.RoleStaff)
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	identities  map[model.UserID]*model.Identity
	emailIndex  map[string]model.UserID
	profiles    map[model.UserID]*model.Profile
	clubs       map[model.ClubID]*model.Club
	codeIndex   map[string]model.ClubID
	invitations map[string]*model.Invitation
	teams       map[model.TeamID]*model.Team
	players     map[model.PlayerID]*model.Player

	nextClubID   model.ClubID
	nextTeamID   model.TeamID
	nextPlayerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		identities:  make(map[model.UserID]*model.Identity),
		emailIndex:  make(map[string]model.UserID),
		profiles:    make(map[model.UserID]*model.Profile),
		clubs:       make(map[model.ClubID]*model.Club),
		codeIndex:   make(map[string]model.ClubID),
		invitations: make(map[string]*model.Invitation),
		teams:       make(map[model.TeamID]*model.Team),
		players:     make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Identity operations

func (s *Storage) CreateIdentity(ctx context.Context, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(identity.Email)
	if _, ok := s.emailIndex[email]; ok {
		return model.ErrEmailExists
	}
	stored := *identity
	stored.Email = email
	s.identities[identity.ID] = &stored
	s.emailIndex[email] = identity.ID
	s.profiles[identity.ID] = &model.Profile{
		ID:        identity.ID,
		Role:      model.RoleGuest,
		UpdatedAt: identity.CreatedAt,
	}
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.UserID) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	result := *identity
	return &result, nil
}

func (s *Storage) GetIdentityByEmail(ctx context.Context, email string) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrIdentityNotFound
	}
	result := *s.identities[id]
	return &result, nil
}

// Profile operations

func (s *Storage) GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	result := *profile
	return &result, nil
}

func (s *Storage) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; !ok {
		return model.ErrProfileNotFound
	}
	stored := *profile
	s.profiles[profile.ID] = &stored
	return nil
}

func (s *Storage) ListProfilesForClub(ctx context.Context, clubID model.ClubID, role model.Role) ([]*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var profiles []*model.Profile
	for _, p := range s.profiles {
		if p.ClubID != clubID {
			continue
		}
		if role != "" && p.Role != role {
			continue
		}
		result := *p
		profiles = append(profiles, &result)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].LastName != profiles[j].LastName {
			return profiles[i].LastName < profiles[j].LastName
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

// Club operations

func (s *Storage) CreateClub(ctx context.Context, club *model.Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codeIndex[club.Code]; ok {
		return model.ErrClubCodeExists
	}
	s.nextClubID++
	club.ID = s.nextClubID
	stored := *club
	s.clubs[club.ID] = &stored
	s.codeIndex[club.Code] = club.ID
	return nil
}

func (s *Storage) GetClub(ctx context.Context, id model.ClubID) (*model.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	club, ok := s.clubs[id]
	if !ok {
		return nil, model.ErrClubNotFound
	}
	result := *club
	return &result, nil
}

func (s *Storage) GetClubByCode(ctx context.Context, code string) (*model.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrClubNotFound
	}
	result := *s.clubs[id]
	return &result, nil
}

func (s *Storage) ListClubs(ctx context.Context) ([]*model.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clubs := make([]*model.Club, 0, len(s.clubs))
	for _, c := range s.clubs {
		result := *c
		clubs = append(clubs, &result)
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].ID < clubs[j].ID })
	return clubs, nil
}

// Invitation operations

func (s *Storage) SaveInvitation(ctx context.Context, invitation *model.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invitations[invitation.InviteCode]; ok {
		return model.ErrInviteCodeExists
	}
	stored := *invitation
	s.invitations[invitation.InviteCode] = &stored
	return nil
}

func (s *Storage) GetInvitationByCode(ctx context.Context, code string) (*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	invitation, ok := s.invitations[code]
	if !ok {
		return nil, model.ErrInvitationNotFound
	}
	result := *invitation
	return &result, nil
}

func (s *Storage) ListInvitationsForClub(ctx context.Context, clubID model.ClubID) ([]*model.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var invitations []*model.Invitation
	for _, inv := range s.invitations {
		if inv.ClubID == clubID {
			result := *inv
			invitations = append(invitations, &result)
		}
	}
	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})
	return invitations, nil
}

func (s *Storage) ConsumeInvitation(ctx context.Context, code string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	invitation, ok := s.invitations[code]
	if !ok {
		return model.ErrInvitationNotFound
	}
	if invitation.ConsumedAt != nil {
		return model.ErrInvitationConsumed
	}
	consumedAt := at
	invitation.ConsumedAt = &consumedAt
	return nil
}

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTeamID++
	team.ID = s.nextTeamID
	stored := *team
	s.teams[team.ID] = &stored
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	result := *team
	return &result, nil
}

func (s *Storage) ListTeamsForClub(ctx context.Context, clubID model.ClubID) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var teams []*model.Team
	for _, t := range s.teams {
		if t.ClubID == clubID {
			result := *t
			teams = append(teams, &result)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[id]; !ok {
		return model.ErrTeamNotFound
	}
	delete(s.teams, id)
	// Players stay in the club without a team
	for _, p := range s.players {
		if p.TeamID != nil && *p.TeamID == id {
			p.TeamID = nil
		}
	}
	return nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPlayerID++
	player.ID = s.nextPlayerID
	stored := *player
	s.players[player.ID] = &stored
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	result := *player
	return &result, nil
}

func (s *Storage) ListPlayersForClub(ctx context.Context, clubID model.ClubID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for _, p := range s.players {
		if p.ClubID == clubID {
			result := *p
			players = append(players, &result)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

package response

import (
	"time"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
)

// User represents the current user in API responses
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ClubID    int64  `json:"club_id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        string(u.ID),
		Email:     u.Email,
		Role:      string(u.Role),
		ClubID:    int64(u.ClubID),
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// AuthResponse is the response for login and registration
type AuthResponse struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session and its user
func AuthResponseFromSession(s *model.Session, u *model.User) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(u),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Club represents a club in API responses
type Club struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ClubFromModel(c *model.Club) Club {
	return Club{ID: int64(c.ID), Code: c.Code, Name: c.Name, CreatedAt: c.CreatedAt}
}

func ClubsFromModel(clubs []*model.Club) []Club {
	out := make([]Club, len(clubs))
	for i, c := range clubs {
		out[i] = ClubFromModel(c)
	}
	return out
}

// Team represents a team in API responses
type Team struct {
	ID       int64  `json:"id"`
	ClubID   int64  `json:"club_id"`
	Name     string `json:"name"`
	AgeGroup string `json:"age_group,omitempty"`
}

func TeamFromModel(t *model.Team) Team {
	return Team{ID: int64(t.ID), ClubID: int64(t.ClubID), Name: t.Name, AgeGroup: t.AgeGroup}
}

func TeamsFromModel(teams []*model.Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = TeamFromModel(t)
	}
	return out
}

// Player represents a club player in API responses
type Player struct {
	ID        int64      `json:"id"`
	ClubID    int64      `json:"club_id"`
	TeamID    *int64     `json:"team_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Position  string     `json:"position,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

func PlayerFromModel(p *model.Player) Player {
	var teamID *int64
	if p.TeamID != nil {
		id := int64(*p.TeamID)
		teamID = &id
	}
	return Player{
		ID:        int64(p.ID),
		ClubID:    int64(p.ClubID),
		TeamID:    teamID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Position:  p.Position,
		BirthDate: p.BirthDate,
	}
}

func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// StaffMember is a staff profile in API responses
type StaffMember struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func StaffFromModel(profiles []*model.Profile) []StaffMember {
	out := make([]StaffMember, len(profiles))
	for i, p := range profiles {
		out[i] = StaffMember{ID: string(p.ID), FirstName: p.FirstName, LastName: p.LastName, Role: string(p.Role)}
	}
	return out
}

// Invitation represents an invitation in API responses.
// The invite code itself is only delivered to the invitee.
type Invitation struct {
	Email     string     `json:"email"`
	ClubID    int64      `json:"club_id"`
	Role      string     `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

func InvitationFromModel(inv *model.Invitation) Invitation {
	return Invitation{
		Email:     inv.Email,
		ClubID:    int64(inv.ClubID),
		Role:      string(inv.Role),
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
		UsedAt:    inv.ConsumedAt,
	}
}

func InvitationsFromModel(invs []*model.Invitation) []Invitation {
	out := make([]Invitation, len(invs))
	for i, inv := range invs {
		out[i] = InvitationFromModel(inv)
	}
	return out
}

// InviteResponse is the response after sending an invitation
type InviteResponse struct {
	Invitation Invitation `json:"invitation"`
	Notified   bool       `json:"notified"`
}

func InviteResponseFromResult(r *invitation.Result) InviteResponse {
	return InviteResponse{Invitation: InvitationFromModel(r.Invitation), Notified: r.Notified}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

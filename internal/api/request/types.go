package request

import "time"

// RegisterRequest is the request body for registering an account.
// Exactly one of Code (club enrollment code) or InviteCode is expected.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Code       string `json:"code,omitempty"`
	Role       string `json:"role,omitempty"`
	InviteCode string `json:"invite_code,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// InviteRequest is the request body for inviting someone to a club.
// ClubID defaults to the caller's club; only a superadmin may name another.
type InviteRequest struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	ClubID int64  `json:"club_id,omitempty"`
}

// CreateClubRequest is the request body for creating a club
type CreateClubRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CreateTeamRequest is the request body for adding a team to a club
type CreateTeamRequest struct {
	Name     string `json:"name"`
	AgeGroup string `json:"age_group,omitempty"`
}

// CreatePlayerRequest is the request body for adding a player to a club
type CreatePlayerRequest struct {
	TeamID    *int64     `json:"team_id,omitempty"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Position  string     `json:"position,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

package cli

import "time"

// User response type (matches API)
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ClubID    int64  `json:"club_id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Club response type
type Club struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Team response type
type Team struct {
	ID       int64  `json:"id"`
	ClubID   int64  `json:"club_id"`
	Name     string `json:"name"`
	AgeGroup string `json:"age_group,omitempty"`
}

// Player response type
type Player struct {
	ID        int64  `json:"id"`
	ClubID    int64  `json:"club_id"`
	TeamID    *int64 `json:"team_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position,omitempty"`
}

// StaffMember response type
type StaffMember struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Invitation response type
type Invitation struct {
	Email     string     `json:"email"`
	ClubID    int64      `json:"club_id"`
	Role      string     `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// InviteResult response type
type InviteResult struct {
	Invitation Invitation `json:"invitation"`
	Notified   bool       `json:"notified"`
}

// HealthResult is the health response plus what the CLI measured
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

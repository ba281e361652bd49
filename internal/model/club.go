package model

import "time"

// ClubID identifies a club row
type ClubID int64

// TeamID identifies a team row
type TeamID int64

// PlayerID identifies a player row
type PlayerID int64

// Club is a registered club. Code is the public enrollment key used at registration.
type Club struct {
	ID        ClubID
	Code      string
	Name      string
	CreatedAt time.Time
}

// Team is a squad within a club
type Team struct {
	ID        TeamID
	ClubID    ClubID
	Name      string
	AgeGroup  string
	CreatedAt time.Time
}

// Player is a club player, optionally assigned to a team
type Player struct {
	ID        PlayerID
	ClubID    ClubID
	TeamID    *TeamID
	FirstName string
	LastName  string
	Position  string
	BirthDate *time.Time
	CreatedAt time.Time
}

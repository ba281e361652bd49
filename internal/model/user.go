package model

import (
	"strings"
	"time"
)

// UserID identifies an authenticated identity (uuid string)
type UserID string

// IdentityMetadata is attached to an identity at sign-up
type IdentityMetadata struct {
	FirstName string
	LastName  string
	ClubID    ClubID
	Role      Role
}

// Identity is an account known to the auth subsystem
type Identity struct {
	ID           UserID
	Email        string // lower-cased, unique
	PasswordHash string // bcrypt hash
	Metadata     IdentityMetadata
	CreatedAt    time.Time
}

// Profile is the role/metadata record kept 1:1 with an identity
type Profile struct {
	ID        UserID
	Role      Role
	ClubID    ClubID // 0 when not attached to a club
	FirstName string
	LastName  string
	UpdatedAt time.Time
}

// User is the view of the current user used by access decisions
type User struct {
	ID        UserID
	Email     string
	Role      Role
	ClubID    ClubID
	FirstName string
	LastName  string
}

// DisplayName returns a name suitable for greetings
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// NormalizeEmail trims and lower-cases an address, rejecting anything without
// a local part and a domain
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

package model

import "time"

// Session is an authenticated session issued by the auth subsystem
type Session struct {
	Token     string
	UserID    UserID
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

package model

import "time"

// Invitation grants registration rights for a club and role until it expires
type Invitation struct {
	Email      string
	ClubID     ClubID
	Role       Role
	InviteCode string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	ConsumedAt *time.Time // nil until redeemed at registration
}

// Expired reports whether the invitation is past its expiry at now
func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Consumed reports whether the invitation has been redeemed
func (i *Invitation) Consumed() bool {
	return i.ConsumedAt != nil
}

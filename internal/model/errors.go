package model

import (
	"errors"
	"fmt"
)

// Error taxonomy. Specific errors below wrap one of these so callers can
// branch on the category with errors.Is.
var (
	// ErrAuth covers bad credentials and missing or expired sessions
	ErrAuth = errors.New("authentication error")
	// ErrPersistence covers store read/write failures
	ErrPersistence = errors.New("persistence error")
	// ErrValidation covers rejected input such as an unknown club code
	ErrValidation = errors.New("validation error")
)

// Common errors used across the application
var (
	// Identity errors
	ErrIdentityNotFound = fmt.Errorf("%w: identity not found", ErrAuth)
	ErrEmailExists      = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email address", ErrValidation)

	// Profile errors
	ErrProfileNotFound = fmt.Errorf("%w: profile not found", ErrPersistence)
	ErrInvalidRole     = fmt.Errorf("%w: invalid role", ErrValidation)

	// Club errors
	ErrClubNotFound   = errors.New("club not found")
	ErrClubCodeExists = fmt.Errorf("%w: club code already in use", ErrValidation)
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Invitation errors
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInviteCodeExists     = errors.New("invite code already exists")
	ErrInvitationExpired    = fmt.Errorf("%w: invitation has expired", ErrValidation)
	ErrInvitationConsumed   = fmt.Errorf("%w: invitation already used", ErrValidation)
	ErrInvitationEmailMatch = fmt.Errorf("%w: invitation was issued to a different email", ErrValidation)

	// Access errors
	ErrForbidden = fmt.Errorf("%w: not permitted for this club", ErrAuth)

	// Session errors
	ErrSessionNotFound = fmt.Errorf("%w: session not found", ErrAuth)
)

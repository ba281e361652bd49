package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/registration"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeValidation            = "VALIDATION_FAILED"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeEmailExists           = "EMAIL_EXISTS"
	CodeClubCodeExists        = "CLUB_CODE_EXISTS"
	CodeClubNotFound          = "CLUB_NOT_FOUND"
	CodeTeamNotFound          = "TEAM_NOT_FOUND"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeInvitationNotFound    = "INVITATION_NOT_FOUND"
	CodeInvalidClubCode       = "INVALID_CLUB_CODE"
	CodeInvalidInviteCode     = "INVALID_INVITE_CODE"
	CodeInvalidRole           = "INVALID_ROLE"
	CodeAccountCreationFailed = "ACCOUNT_CREATION_FAILED"
	CodeProfileUpdateFailed   = "PROFILE_UPDATE_FAILED"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var regErr *registration.RegistrationError
	if errors.As(err, &regErr) {
		return fromRegistration(regErr)
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, model.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Not permitted for this club"}}

	// Not found
	case errors.Is(err, model.ErrClubNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeClubNotFound, "Club not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvitationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeInvitationNotFound, "Invitation not found"}}

	// Conflicts
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}
	case errors.Is(err, model.ErrClubCodeExists):
		return &httpError{http.StatusConflict, APIError{CodeClubCodeExists, "Club code already in use"}}

	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, "Invalid role"}}
	case errors.Is(err, model.ErrValidation):
		return &httpError{http.StatusBadRequest, APIError{CodeValidation, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

func fromRegistration(err *registration.RegistrationError) *httpError {
	switch err.Kind {
	case registration.InvalidClubCode:
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidClubCode, err.Message}}
	case registration.InvalidInviteCode:
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidInviteCode, err.Message}}
	case registration.InvalidRole:
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, err.Message}}
	case registration.AccountCreationFailed:
		if errors.Is(err, model.ErrEmailExists) {
			return &httpError{http.StatusConflict, APIError{CodeEmailExists, err.Message}}
		}
		return &httpError{http.StatusBadRequest, APIError{CodeAccountCreationFailed, err.Message}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeProfileUpdateFailed, err.Message}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient role for this action"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInternalErrorf creates an internal server error with a formatted message
func NewInternalErrorf(format string, args ...any) error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, fmt.Sprintf(format, args...)}}
}

package registration

import "github.com/ricardozepinto10/NextGenAcademy/internal/model"

// Kind identifies the registration step that failed
type Kind int

const (
	InvalidClubCode Kind = iota + 1
	InvalidInviteCode
	InvalidRole
	AccountCreationFailed
	ProfileUpdateFailed
)

func (k Kind) String() string {
	switch k {
	case InvalidClubCode:
		return "invalid_club_code"
	case InvalidInviteCode:
		return "invalid_invite_code"
	case InvalidRole:
		return "invalid_role"
	case AccountCreationFailed:
		return "account_creation_failed"
	case ProfileUpdateFailed:
		return "profile_update_failed"
	default:
		return "unknown"
	}
}

// category maps a failed step onto the shared error taxonomy
func (k Kind) category() error {
	switch k {
	case AccountCreationFailed:
		return model.ErrAuth
	case ProfileUpdateFailed:
		return model.ErrPersistence
	default:
		return model.ErrValidation
	}
}

// RegistrationError reports which step of a registration failed, with a
// message fit to show the user
type RegistrationError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *RegistrationError) Error() string {
	return e.Message
}

// Unwrap exposes both the taxonomy category and the upstream cause
func (e *RegistrationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.category()}
	}
	return []error{e.Kind.category(), e.Err}
}

func fail(kind Kind, message string, cause error) *RegistrationError {
	return &RegistrationError{Kind: kind, Message: message, Err: cause}
}

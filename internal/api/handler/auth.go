package handler

import (
	"net/http"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api/apierr"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/request"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/response"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/registration"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/session"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	registration *registration.Service
	auth         *auth.Service
	users        *session.Provider
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(reg *registration.Service, authService *auth.Service, users *session.Provider) *AuthHandler {
	return &AuthHandler{
		registration: reg,
		auth:         authService,
		users:        users,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email and password are required"))
		return
	}
	if req.Code == "" && req.InviteCode == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("code or invite_code is required"))
		return
	}

	_, err := h.registration.Register(r.Context(), registration.Input{
		Email:      req.Email,
		Password:   req.Password,
		Code:       req.Code,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       model.Role(req.Role),
		InviteCode: req.InviteCode,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.signIn(w, r, req.Email, req.Password, http.StatusCreated)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email and password are required"))
		return
	}

	h.signIn(w, r, req.Email, req.Password, http.StatusOK)
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, email, password string, status int) {
	sess, err := h.registration.Login(r.Context(), email, password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	user := h.users.CurrentUser(r.Context(), sess.Token)
	if user == nil {
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}
	response.JSON(w, status, response.AuthResponseFromSession(sess, user))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), middleware.GetToken(r.Context())); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/policy"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/registration"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/layout"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/pages"
)

// AuthHandler handles the login and registration pages and actions
type AuthHandler struct {
	registration  *registration.Service
	auth          *auth.Service
	logger        *slog.Logger
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(reg *registration.Service, authService *auth.Service, logger *slog.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		registration:  reg,
		auth:          authService,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

// LoginPage renders the login page. Signed-in users never get here: the
// guard sends them to the dashboard.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := pages.LoginData{
		PageData: pageData(r, "Log in"),
		Next:     r.URL.Query().Get("next"),
	}
	render(w, r, h.logger, http.StatusOK, pages.Login(data))
}

// RegisterPage renders the registration page, prefilled from ?invite= and ?code=
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pages.RegisterData{
		PageData:   pageData(r, "Register"),
		Email:      q.Get("email"),
		Code:       q.Get("code"),
		InviteCode: q.Get("invite"),
	}
	render(w, r, h.logger, http.StatusOK, pages.Register(data))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if email == "" || password == "" {
		h.renderLoginError(w, r, "Email and password are required", email, next)
		return
	}

	session, err := h.registration.Login(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("login failed", slog.Any("error", err))
		}
		h.renderLoginError(w, r, "Invalid email or password", email, next)
		return
	}

	h.startSession(w, session)
	middleware.SetFlash(w, layout.FlashSuccess, "Welcome back!")
	http.Redirect(w, r, middleware.SafeNext(next, policy.DashboardPath), http.StatusSeeOther)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, pages.RegisterData{Error: "Invalid form data"})
		return
	}

	data := pages.RegisterData{
		Email:       strings.TrimSpace(r.FormValue("email")),
		FirstName:   strings.TrimSpace(r.FormValue("first_name")),
		LastName:    strings.TrimSpace(r.FormValue("last_name")),
		Code:        strings.TrimSpace(r.FormValue("code")),
		InviteCode:  strings.TrimSpace(r.FormValue("invite_code")),
		FieldErrors: make(map[string]string),
	}
	password := r.FormValue("password")

	if data.Email == "" {
		data.FieldErrors["email"] = "Email is required"
	}
	if password == "" {
		data.FieldErrors["password"] = "Password is required"
	}
	if password != r.FormValue("password_confirm") {
		data.FieldErrors["password_confirm"] = "Passwords do not match"
	}
	if data.Code == "" && data.InviteCode == "" {
		data.FieldErrors["code"] = "Club code is required"
	}
	if len(data.FieldErrors) > 0 {
		h.renderRegisterError(w, r, data)
		return
	}

	_, err := h.registration.Register(r.Context(), registration.Input{
		Email:      data.Email,
		Password:   password,
		Code:       data.Code,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Role:       model.Role(r.FormValue("role")),
		InviteCode: data.InviteCode,
	})
	if err != nil {
		var regErr *registration.RegistrationError
		if errors.As(err, &regErr) {
			data.Error = regErr.Message
		} else {
			h.logger.Error("registration failed", slog.Any("error", err))
			data.Error = "Registration failed. Please try again."
		}
		h.renderRegisterError(w, r, data)
		return
	}

	session, err := h.registration.Login(r.Context(), data.Email, password)
	if err != nil {
		h.logger.Error("sign in after registration failed", slog.Any("error", err))
		middleware.SetFlash(w, layout.FlashInfo, "Account created. Please log in.")
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}

	h.startSession(w, session)
	middleware.SetFlash(w, layout.FlashSuccess, "Account created!")
	http.Redirect(w, r, policy.DashboardPath, http.StatusSeeOther)
}

// Logout ends the session on the server and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), middleware.GetToken(r.Context())); err != nil {
		h.logger.Warn("sign out failed", slog.Any("error", err))
	}
	middleware.ClearSessionCookie(w, h.secureCookies)
	middleware.SetFlash(w, layout.FlashInfo, "You have been logged out")
	http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, session *model.Session) {
	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	middleware.SetSessionCookie(w, session.Token, maxAge, h.secureCookies)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, msg, email, next string) {
	data := pages.LoginData{
		PageData: pageData(r, "Log in"),
		Email:    email,
		Error:    msg,
		Next:     next,
	}
	render(w, r, h.logger, http.StatusUnauthorized, pages.Login(data))
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, data pages.RegisterData) {
	data.PageData = pageData(r, "Register")
	if data.FieldErrors == nil {
		data.FieldErrors = make(map[string]string)
	}
	render(w, r, h.logger, http.StatusUnprocessableEntity, pages.Register(data))
}

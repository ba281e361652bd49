package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/layout"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/pages"
)

// InvitationHandler serves the admin invitations page
type InvitationHandler struct {
	invitations *invitation.Service
	logger      *slog.Logger
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitations *invitation.Service, logger *slog.Logger) *InvitationHandler {
	return &InvitationHandler{invitations: invitations, logger: logger}
}

// Page lists the club's invitations under the invite form
func (h *InvitationHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, "", "")
}

// Send handles the invite form
func (h *InvitationHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, "", "Invalid form data")
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	role := model.Role(r.FormValue("role"))

	if err := club.Authorize(user, user.ClubID); err != nil {
		h.renderPage(w, r, http.StatusForbidden, email, "You are not attached to a club.")
		return
	}

	result, err := h.invitations.SendInvitation(r.Context(), email, user.ClubID, role)
	if err != nil {
		msg := "Failed to send invitation. Please try again."
		switch {
		case errors.Is(err, model.ErrInvalidEmail):
			msg = "Please enter a valid email address."
		case errors.Is(err, model.ErrInvalidRole):
			msg = "Please choose member, staff or admin."
		default:
			h.logger.Error("invitation failed", slog.Any("error", err))
		}
		h.renderPage(w, r, http.StatusUnprocessableEntity, email, msg)
		return
	}

	if result.Notified {
		middleware.SetFlash(w, layout.FlashSuccess, "Invitation sent to "+result.Invitation.Email)
	} else {
		middleware.SetFlash(w, layout.FlashError, "Invitation saved but the email could not be sent to "+result.Invitation.Email)
	}
	http.Redirect(w, r, "/invitations", http.StatusSeeOther)
}

func (h *InvitationHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, email, errMsg string) {
	user := middleware.GetUser(r.Context())
	data := pages.InvitationsData{
		PageData: pageData(r, "Invitations"),
		Email:    email,
		Error:    errMsg,
	}
	if user.ClubID != 0 {
		invs, err := h.invitations.ListInvitations(r.Context(), user.ClubID)
		if err != nil {
			h.logger.Error("list invitations failed", slog.Any("error", err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data.Invitations = invs
	}
	render(w, r, h.logger, status, pages.Invitations(data))
}

package handler

import (
	"net/http"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api/apierr"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/request"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/response"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
)

// InvitationHandler handles invitation endpoints
type InvitationHandler struct {
	invitations *invitation.Service
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitations *invitation.Service) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

// Send handles POST /api/v1/invitations. The invitation is for the caller's
// club unless the body names one in club_id.
func (h *InvitationHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.InviteRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.Email == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email is required"))
		return
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleMember
	}
	clubID := user.ClubID
	if req.ClubID != 0 {
		clubID = model.ClubID(req.ClubID)
	}
	if clubID == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("club_id is required"))
		return
	}
	if err := club.Authorize(user, clubID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.invitations.SendInvitation(r.Context(), req.Email, clubID, role)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.InviteResponseFromResult(result))
}

// List handles GET /api/v1/clubs/{id}/invitations
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	clubID := model.ClubID(id)
	if err := club.Authorize(user, clubID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	invs, err := h.invitations.ListInvitations(r.Context(), clubID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.InvitationsFromModel(invs))
}

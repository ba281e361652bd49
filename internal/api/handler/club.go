package handler

import (
	"net/http"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api/apierr"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/request"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/response"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
)

// ClubHandler handles club, team and staff endpoints
type ClubHandler struct {
	clubs *club.Service
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubs *club.Service) *ClubHandler {
	return &ClubHandler{clubs: clubs}
}

// clubFromPath parses {id} and checks the caller may act on that club
func clubFromPath(r *http.Request) (model.ClubID, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return 0, err
	}
	clubID := model.ClubID(id)
	if err := club.Authorize(middleware.MustGetUser(r.Context()), clubID); err != nil {
		return 0, err
	}
	return clubID, nil
}

// Create handles POST /api/v1/clubs
func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClubRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	c, err := h.clubs.CreateClub(r.Context(), req.Name, req.Code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.ClubFromModel(c))
}

// List handles GET /api/v1/clubs. Superadmins see every club, everyone
// else only their own.
func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	if user.Role == model.RoleSuperAdmin {
		clubs, err := h.clubs.ListClubs(r.Context())
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.ClubsFromModel(clubs))
		return
	}

	clubs := []*model.Club{}
	if user.ClubID != 0 {
		c, err := h.clubs.GetClub(r.Context(), user.ClubID)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		clubs = append(clubs, c)
	}
	response.JSON(w, http.StatusOK, response.ClubsFromModel(clubs))
}

// Get handles GET /api/v1/clubs/{id}
func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	clubID, err := clubFromPath(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	c, err := h.clubs.GetClub(r.Context(), clubID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ClubFromModel(c))
}

// CreateTeam handles POST /api/v1/clubs/{id}/teams
func (h *ClubHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	clubID, err := clubFromPath(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.CreateTeamRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	team, err := h.clubs.CreateTeam(r.Context(), clubID, req.Name, req.AgeGroup)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.TeamFromModel(team))
}

// ListTeams handles GET /api/v1/clubs/{id}/teams
func (h *ClubHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	clubID, err := clubFromPath(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	teams, err := h.clubs.ListTeams(r.Context(), clubID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamsFromModel(teams))
}

// DeleteTeam handles DELETE /api/v1/teams/{id}
func (h *ClubHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	team, err := h.clubs.GetTeam(r.Context(), model.TeamID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if err := club.Authorize(middleware.MustGetUser(r.Context()), team.ClubID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.clubs.DeleteTeam(r.Context(), team.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// ListStaff handles GET /api/v1/clubs/{id}/staff
func (h *ClubHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	clubID, err := clubFromPath(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	staff, err := h.clubs.ListStaff(r.Context(), clubID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StaffFromModel(staff))
}

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

// PlayerHandler handles club player endpoints
type PlayerHandler struct {
	clubs *club.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(clubs *club.Service) *PlayerHandler {
	return &PlayerHandler{clubs: clubs}
}

// Create handles POST /api/v1/clubs/{id}/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	clubID, err := clubFromPath(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.CreatePlayerRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	in := club.PlayerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		BirthDate: req.BirthDate,
	}
	if req.TeamID != nil {
		teamID := model.TeamID(*req.TeamID)
		in.TeamID = &teamID
	}

	player, err := h.clubs.CreatePlayer(r.Context(), clubID, in)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// List handles GET /api/v1/clubs/{id}/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	clubID, err := clubFromPath(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	players, err := h.clubs.ListPlayers(r.Context(), clubID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.clubs.GetPlayer(r.Context(), model.PlayerID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if err := club.Authorize(middleware.MustGetUser(r.Context()), player.ClubID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.clubs.DeletePlayer(r.Context(), player.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/templates/pages"
)

// PageHandler serves the signed-in pages
type PageHandler struct {
	clubs  *club.Service
	logger *slog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(clubs *club.Service, logger *slog.Logger) *PageHandler {
	return &PageHandler{clubs: clubs, logger: logger}
}

// Dashboard renders the dashboard with a summary of the user's club
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	data := pages.DashboardData{PageData: pageData(r, "Dashboard")}

	if user.ClubID != 0 {
		ctx := r.Context()
		c, err := h.clubs.GetClub(ctx, user.ClubID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		teams, err := h.clubs.ListTeams(ctx, user.ClubID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		players, err := h.clubs.ListPlayers(ctx, user.ClubID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		data.Club, data.TeamCount, data.PlayerCount = c, len(teams), len(players)
	}

	render(w, r, h.logger, http.StatusOK, pages.Dashboard(data))
}

// AccountSettings renders the account page
func (h *PageHandler) AccountSettings(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, http.StatusOK, pages.AccountSettings(pageData(r, "Account settings")))
}

// Players renders the players of the user's club
func (h *PageHandler) Players(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	data := pages.PlayersData{PageData: pageData(r, "Players"), Teams: map[model.TeamID]string{}}

	if user.ClubID != 0 {
		players, err := h.clubs.ListPlayers(r.Context(), user.ClubID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		teams, err := h.clubs.ListTeams(r.Context(), user.ClubID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		for _, t := range teams {
			data.Teams[t.ID] = t.Name
		}
		data.Players = players
	}

	render(w, r, h.logger, http.StatusOK, pages.Players(data))
}

// Calendar renders the calendar page
func (h *PageHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, http.StatusOK, pages.Calendar(pageData(r, "Calendar")))
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, http.StatusNotFound, pages.NotFound(pageData(r, "Not found")))
}

func (h *PageHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("page load failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

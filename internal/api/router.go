package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api/handler"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/response"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/guard"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/policy"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/registration"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	Guard               *guard.Guard
	AuthService         *auth.Service
	SessionProvider     *session.Provider
	RegistrationService *registration.Service
	InvitationService   *invitation.Service
	ClubService         *club.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the API routes under /api/v1 on r
func Mount(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.RegistrationService, cfg.AuthService, cfg.SessionProvider)
	invitationHandler := handler.NewInvitationHandler(cfg.InvitationService)
	clubHandler := handler.NewClubHandler(cfg.ClubService)
	playerHandler := handler.NewPlayerHandler(cfg.ClubService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// route attaches the guard for meta to a handler
	route := func(meta policy.RouteMeta, h http.HandlerFunc) http.Handler {
		return middleware.Guard(cfg.Guard, meta)(h)
	}

	// Public routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Any signed-in user
	api.Handle("/auth/logout", route(policy.Authenticated, authHandler.Logout)).Methods(http.MethodPost)
	api.Handle("/me", route(policy.Authenticated, authHandler.Me)).Methods(http.MethodGet)
	api.Handle("/clubs", route(policy.Authenticated, clubHandler.List)).Methods(http.MethodGet)
	api.Handle("/clubs/{id:[0-9]+}", route(policy.Authenticated, clubHandler.Get)).Methods(http.MethodGet)
	api.Handle("/clubs/{id:[0-9]+}/teams", route(policy.Authenticated, clubHandler.ListTeams)).Methods(http.MethodGet)
	api.Handle("/clubs/{id:[0-9]+}/players", route(policy.Authenticated, playerHandler.List)).Methods(http.MethodGet)
	api.Handle("/clubs/{id:[0-9]+}/staff", route(policy.Authenticated, clubHandler.ListStaff)).Methods(http.MethodGet)

	// Role-restricted routes
	api.Handle("/invitations", route(policy.RequireRoleOrSuperadmin(model.RoleAdmin), invitationHandler.Send)).Methods(http.MethodPost)
	api.Handle("/clubs/{id:[0-9]+}/invitations", route(policy.RequireRoleOrSuperadmin(model.RoleAdmin), invitationHandler.List)).Methods(http.MethodGet)
	api.Handle("/clubs/{id:[0-9]+}/teams", route(policy.RequireRole(model.RoleStaff), clubHandler.CreateTeam)).Methods(http.MethodPost)
	api.Handle("/clubs/{id:[0-9]+}/players", route(policy.RequireRole(model.RoleStaff), playerHandler.Create)).Methods(http.MethodPost)
	api.Handle("/clubs", route(policy.RequireRole(model.RoleSuperAdmin), clubHandler.Create)).Methods(http.MethodPost)
	api.Handle("/teams/{id:[0-9]+}", route(policy.RequireRole(model.RoleStaff), clubHandler.DeleteTeam)).Methods(http.MethodDelete)
	api.Handle("/players/{id:[0-9]+}", route(policy.RequireRole(model.RoleStaff), playerHandler.Delete)).Methods(http.MethodDelete)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

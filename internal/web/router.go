package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/club"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/guard"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/policy"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/registration"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/handler"
	"github.com/ricardozepinto10/NextGenAcademy/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger              *slog.Logger
	Guard               *guard.Guard
	AuthService         *auth.Service
	RegistrationService *registration.Service
	InvitationService   *invitation.Service
	ClubService         *club.Service
	SecureCookies       bool
	StaticDir           string // Path to static files directory
}

// Route is one page or form action together with its access requirements
type Route struct {
	Method  string
	Path    string
	Meta    policy.RouteMeta
	Handler http.HandlerFunc
}

// Routes returns the route table of the web surface
func Routes(cfg RouterConfig) []Route {
	authHandler := handler.NewAuthHandler(cfg.RegistrationService, cfg.AuthService, cfg.Logger, cfg.SecureCookies)
	pageHandler := handler.NewPageHandler(cfg.ClubService, cfg.Logger)
	invitationHandler := handler.NewInvitationHandler(cfg.InvitationService, cfg.Logger)
	admin := policy.RequireRole(model.RoleAdmin)

	return []Route{
		{http.MethodGet, policy.LoginPath, policy.Public, authHandler.LoginPage},
		{http.MethodGet, "/register", policy.Public, authHandler.RegisterPage},
		{http.MethodPost, "/auth/login", policy.Public, authHandler.Login},
		{http.MethodPost, "/auth/register", policy.Public, authHandler.Register},
		{http.MethodPost, "/auth/logout", policy.Authenticated, authHandler.Logout},

		{http.MethodGet, policy.DashboardPath, policy.Authenticated, pageHandler.Dashboard},
		{http.MethodGet, "/account-settings", policy.Authenticated, pageHandler.AccountSettings},
		{http.MethodGet, "/players", policy.Authenticated, pageHandler.Players},
		{http.MethodGet, "/calendar", policy.Authenticated, pageHandler.Calendar},

		{http.MethodGet, "/invitations", admin, invitationHandler.Page},
		{http.MethodPost, "/invitations", admin, invitationHandler.Send},
	}
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the web routes on r
func Mount(r *mux.Router, cfg RouterConfig) {
	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Logging(cfg.Logger))
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(middleware.Flash())

	pages.Handle("/", http.RedirectHandler(policy.DashboardPath, http.StatusSeeOther)).Methods(http.MethodGet)
	for _, rt := range Routes(cfg) {
		pages.Handle(rt.Path, middleware.Guard(cfg.Guard, rt.Meta)(rt.Handler)).Methods(rt.Method)
	}

	notFound := handler.NewPageHandler(cfg.ClubService, cfg.Logger).NotFound
	r.NotFoundHandler = middleware.Flash()(middleware.Guard(cfg.Guard, policy.Public)(http.HandlerFunc(notFound)))
}

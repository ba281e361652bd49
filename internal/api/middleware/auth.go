package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api/apierr"
	"github.com/ricardozepinto10/NextGenAcademy/internal/middleware"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/guard"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/policy"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// SessionCookie is the cookie the web surface stores the session token in
const SessionCookie = "session"

// Guard creates middleware that runs every request through the navigation
// guard with the route's metadata. A redirect to the login page becomes 401
// and any other redirect becomes 403.
func Guard(g *guard.Guard, meta policy.RouteMeta) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			res := g.Check(r.Context(), meta, r.URL.Path, token)
			recordGuard(r.Context(), res)

			if res.State == guard.Redirected {
				if res.Decision.RedirectTo == policy.LoginPath {
					apierr.WriteError(w, apierr.NewUnauthorizedError())
				} else {
					apierr.WriteError(w, apierr.NewForbiddenError())
				}
				return
			}

			ctx := r.Context()
			if res.User != nil {
				ctx = context.WithValue(ctx, userContextKey, res.User)
				ctx = context.WithValue(ctx, tokenContextKey, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken extracts the session token from the request
func ExtractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie(SessionCookie)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetUser returns the authenticated user from the request context
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetToken returns the session token of the authenticated user
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - guard middleware not applied?")
	}
	return user
}

func recordGuard(ctx context.Context, res guard.Resolution) {
	if res.User == nil {
		middleware.RecordGuard(ctx, "", "", res.String())
		return
	}
	middleware.RecordGuard(ctx, string(res.User.ID), string(res.User.Role), res.String())
}

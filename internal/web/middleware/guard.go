package middleware

import (
	"context"
	"net/http"
	"net/url"

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

// SessionCookie holds the session token
const SessionCookie = "session"

// GetUser retrieves the signed-in user from the request context.
// Returns nil on public pages viewed anonymously.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetToken retrieves the session token the request was guarded with
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// Guard returns middleware that resolves every request as a route
// transition. Redirect decisions become 303 See Other. Redirects to the
// login page carry the requested path in ?next= so the user can be sent
// back after signing in.
func Guard(g *guard.Guard, meta policy.RouteMeta) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			res := g.Check(r.Context(), meta, r.URL.Path, token)
			recordGuard(r.Context(), res)

			if res.State == guard.Redirected {
				target := res.Decision.RedirectTo
				if target == policy.LoginPath && r.Method == http.MethodGet {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				if res.User == nil && token != "" {
					ClearSessionCookie(w, false)
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, res.User)
			ctx = context.WithValue(ctx, tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie stores token in the session cookie until expires
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	SetSessionCookie(w, "", -1, secure)
}

// SafeNext returns next if it is a local path, otherwise fallback
func SafeNext(next, fallback string) string {
	if len(next) == 0 || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return fallback
	}
	return next
}

func recordGuard(ctx context.Context, res guard.Resolution) {
	if res.User == nil {
		middleware.RecordGuard(ctx, "", "", res.String())
		return
	}
	middleware.RecordGuard(ctx, string(res.User.ID), string(res.User.Role), res.String())
}

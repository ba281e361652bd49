package policy

import "github.com/ricardozepinto10/NextGenAcademy/internal/model"

// Well-known redirect targets
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// RouteMeta is the static access requirement declared for a route.
// An empty RequiresRole means any role is accepted.
type RouteMeta struct {
	RequiresAuth bool
	RequiresRole model.Role
	// AllowSuperadmin also admits superadmins on a role-restricted route
	AllowSuperadmin bool
}

// Public is the metadata of a route open to everyone
var Public = RouteMeta{}

// Authenticated is the metadata of a route open to any signed-in user
var Authenticated = RouteMeta{RequiresAuth: true}

// RequireRole is the metadata of a route restricted to one role
func RequireRole(role model.Role) RouteMeta {
	return RouteMeta{RequiresAuth: true, RequiresRole: role}
}

// RequireRoleOrSuperadmin is RequireRole that also lets superadmins through
func RequireRoleOrSuperadmin(role model.Role) RouteMeta {
	return RouteMeta{RequiresAuth: true, RequiresRole: role, AllowSuperadmin: true}
}

// Decision is the outcome of evaluating a route transition
type Decision struct {
	// RedirectTo is empty when the transition is allowed
	RedirectTo string
}

// Allow lets the transition proceed
func Allow() Decision { return Decision{} }

// Redirect sends the transition to path instead
func Redirect(path string) Decision { return Decision{RedirectTo: path} }

// Allowed reports whether the transition may proceed
func (d Decision) Allowed() bool { return d.RedirectTo == "" }

func (d Decision) String() string {
	if d.Allowed() {
		return "allow"
	}
	return "redirect:" + d.RedirectTo
}

// Evaluate decides whether user may enter path, given the route's metadata.
// user is nil when nobody is signed in. It is pure and total.
//
// Rules, first match wins:
//  1. a signed-in user asking for the login page goes to the dashboard
//  2. a route with no requirements is allowed
//  3. a route needing auth sends anonymous users to the login page
//  4. a role-restricted route sends anonymous users to login and any other
//     role to the dashboard, unless the route admits superadmins and the
//     user is one
//  5. everything else is allowed
func Evaluate(meta RouteMeta, path string, user *model.User) Decision {
	if path == LoginPath && user != nil {
		return Redirect(DashboardPath)
	}
	if !meta.RequiresAuth && meta.RequiresRole == "" {
		return Allow()
	}
	if user == nil {
		return Redirect(LoginPath)
	}
	if meta.RequiresRole != "" && user.Role != meta.RequiresRole {
		if !meta.AllowSuperadmin || user.Role != model.RoleSuperAdmin {
			return Redirect(DashboardPath)
		}
	}
	return Allow()
}

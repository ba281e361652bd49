package guard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/policy"
)

// State is the lifecycle of a single route transition
type State int

const (
	Pending State = iota
	Allowed
	Redirected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Allowed:
		return "allowed"
	case Redirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// UserResolver looks up the current user for a session token
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) *model.User
}

// Transition is one attempt to enter a route. It starts Pending and is
// resolved exactly once.
type Transition struct {
	Meta  policy.RouteMeta
	Path  string
	Token string

	once       sync.Once
	resolution Resolution
}

// NewTransition creates a pending transition
func NewTransition(meta policy.RouteMeta, path, token string) *Transition {
	return &Transition{Meta: meta, Path: path, Token: token}
}

// State reports where the transition is in its lifecycle
func (t *Transition) State() State {
	return t.resolution.State
}

// Resolution is the committed outcome of a transition
type Resolution struct {
	State    State
	Decision policy.Decision
	// User is nil for anonymous requests
	User *model.User
}

// String summarizes the outcome for logs, e.g. "redirected:/login"
func (r Resolution) String() string {
	if r.State == Redirected {
		return r.State.String() + ":" + r.Decision.RedirectTo
	}
	return r.State.String()
}

// Guard authorizes route transitions
type Guard struct {
	users  UserResolver
	logger *slog.Logger
}

// New creates a new Guard
func New(users UserResolver, logger *slog.Logger) *Guard {
	return &Guard{
		users:  users,
		logger: logger.With(slog.String("component", "navigation-guard")),
	}
}

// Resolve looks up the current user, evaluates the route policy and records
// the outcome on t. Resolving an already resolved transition returns the
// first outcome unchanged.
func (g *Guard) Resolve(ctx context.Context, t *Transition) Resolution {
	t.once.Do(func() {
		user := g.users.CurrentUser(ctx, t.Token)
		decision := policy.Evaluate(t.Meta, t.Path, user)

		state := Allowed
		if !decision.Allowed() {
			state = Redirected
			g.logger.Debug("route transition redirected",
				slog.String("path", t.Path),
				slog.String("redirect_to", decision.RedirectTo),
				slog.Bool("authenticated", user != nil))
		}
		t.resolution = Resolution{State: state, Decision: decision, User: user}
	})
	return t.resolution
}

// Check is shorthand for resolving a fresh transition
func (g *Guard) Check(ctx context.Context, meta policy.RouteMeta, path, token string) Resolution {
	return g.Resolve(ctx, NewTransition(meta, path, token))
}

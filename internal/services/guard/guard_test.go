package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/policy"
	"github.com/ricardozepinto10/NextGenAcademy/internal/testutil"
)

type stubUsers struct {
	users map[string]*model.User
	calls int
}

func (s *stubUsers) CurrentUser(ctx context.Context, token string) *model.User {
	s.calls++
	if ctx.Err() != nil {
		return nil
	}
	return s.users[token]
}

type GuardSuite struct {
	suite.Suite
	users *stubUsers
	guard *Guard
	ctx   context.Context
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

func (s *GuardSuite) SetupTest() {
	s.users = &stubUsers{users: map[string]*model.User{
		"member": {ID: "u1", Role: model.RoleMember},
		"admin":  {ID: "u2", Role: model.RoleAdmin},
	}}
	s.guard = New(s.users, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *GuardSuite) TestTransitionStartsPending() {
	t := NewTransition(policy.Authenticated, "/dashboard", "member")
	s.Equal(Pending, t.State())
}

func (s *GuardSuite) TestAllowCarriesUser() {
	res := s.guard.Check(s.ctx, policy.Authenticated, "/dashboard", "member")

	s.Equal(Allowed, res.State)
	s.Require().NotNil(res.User)
	s.Equal(model.UserID("u1"), res.User.ID)
}

func (s *GuardSuite) TestAnonymousRedirectedToLogin() {
	res := s.guard.Check(s.ctx, policy.Authenticated, "/dashboard", "")

	s.Equal(Redirected, res.State)
	s.Equal(policy.LoginPath, res.Decision.RedirectTo)
	s.Nil(res.User)
}

func (s *GuardSuite) TestWrongRoleRedirectedToDashboard() {
	res := s.guard.Check(s.ctx, policy.RequireRole(model.RoleAdmin), "/invitations", "member")

	s.Equal(Redirected, res.State)
	s.Equal(policy.DashboardPath, res.Decision.RedirectTo)
}

func (s *GuardSuite) TestMatchingRoleAllowed() {
	res := s.guard.Check(s.ctx, policy.RequireRole(model.RoleAdmin), "/invitations", "admin")

	s.Equal(Allowed, res.State)
}

func (s *GuardSuite) TestSignedInUserOnLoginRedirected() {
	res := s.guard.Check(s.ctx, policy.Public, policy.LoginPath, "member")

	s.Equal(policy.DashboardPath, res.Decision.RedirectTo)
}

func (s *GuardSuite) TestResolvesOnce() {
	t := NewTransition(policy.Authenticated, "/dashboard", "member")

	first := s.guard.Resolve(s.ctx, t)
	delete(s.users.users, "member")
	second := s.guard.Resolve(s.ctx, t)

	s.Equal(first, second)
	s.Equal(1, s.users.calls)
	s.Equal(Allowed, t.State())
}

func (s *GuardSuite) TestCancelledRequestFailsClosed() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	res := s.guard.Check(ctx, policy.Authenticated, "/dashboard", "member")
	s.Equal(Redirected, res.State)
	s.Equal(policy.LoginPath, res.Decision.RedirectTo)
}

func (s *GuardSuite) TestStateString() {
	s.Equal("pending", Pending.String())
	s.Equal("allowed", Allowed.String())
	s.Equal("redirected", Redirected.String())
}

func (s *GuardSuite) TestResolutionString() {
	s.Equal("allowed", s.guard.Check(s.ctx, policy.Authenticated, "/dashboard", "member").String())
	s.Equal("redirected:/login", s.guard.Check(s.ctx, policy.Authenticated, "/dashboard", "").String())
}

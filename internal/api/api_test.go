package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ricardozepinto10/NextGenAcademy/internal/api"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/apierr"
	"github.com/ricardozepinto10/NextGenAcademy/internal/api/response"
	"github.com/ricardozepinto10/NextGenAcademy/internal/factory"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app     *factory.TestApp
	handler http.Handler
	club    *model.Club
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.handler = api.NewRouter(api.RouterConfig{
		Logger:              testutil.NopLogger(),
		Guard:               s.app.Guard,
		AuthService:         s.app.AuthService,
		SessionProvider:     s.app.SessionProvider,
		RegistrationService: s.app.RegistrationService,
		InvitationService:   s.app.InvitationService,
		ClubService:         s.app.ClubService,
	})
	s.club = s.app.CreateClub("FCNG", "NextGen FC")
}

func (s *APISuite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *APISuite) decode(rr *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func (s *APISuite) errorCode(rr *httptest.ResponseRecorder) string {
	var resp apierr.ErrorResponse
	s.decode(rr, &resp)
	return resp.Error.Code
}

func (s *APISuite) user(email string, role model.Role) string {
	_, token := s.app.CreateUser(email, role, s.club.ID)
	return token
}

func (s *APISuite) TestHealthCheck() {
	rr := s.request(http.MethodGet, "/api/v1/health", nil, "")
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "ok")
}

// Auth

func (s *APISuite) TestRegisterWithClubCodeAndFetchMe() {
	rr := s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "parent@example.com", "password": "password123", "code": "FCNG", "first_name": "Pat",
	}, "")
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var auth response.AuthResponse
	s.decode(rr, &auth)
	s.NotEmpty(auth.SessionToken)
	s.Equal("member", auth.User.Role)
	s.Equal(int64(s.club.ID), auth.User.ClubID)

	rr = s.request(http.MethodGet, "/api/v1/me", nil, auth.SessionToken)
	s.Require().Equal(http.StatusOK, rr.Code)
	var me response.User
	s.decode(rr, &me)
	s.Equal("parent@example.com", me.Email)
	s.Equal("Pat", me.FirstName)
}

func (s *APISuite) TestRegisterWithLowercaseClubCode() {
	rr := s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "parent@example.com", "password": "password123", "code": " fcng ",
	}, "")
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var auth response.AuthResponse
	s.decode(rr, &auth)
	s.Equal(int64(s.club.ID), auth.User.ClubID)
}

func (s *APISuite) TestRegisterWithClubCodeCannotChooseElevatedRole() {
	for _, role := range []string{"staff", "admin", "superadmin"} {
		rr := s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
			"email": role + "@example.com", "password": "password123", "code": "FCNG", "role": role,
		}, "")
		s.Equal(http.StatusBadRequest, rr.Code, role)
		s.Equal(apierr.CodeInvalidRole, s.errorCode(rr), role)

		rr = s.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": role + "@example.com", "password": "password123",
		}, "")
		s.Equal(http.StatusUnauthorized, rr.Code, role)
	}
}

func (s *APISuite) TestRegisterWithUnknownClubCode() {
	rr := s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "parent@example.com", "password": "password123", "code": "BADCODE",
	}, "")
	s.Equal(http.StatusBadRequest, rr.Code)

	var resp apierr.ErrorResponse
	s.decode(rr, &resp)
	s.Equal(apierr.CodeInvalidClubCode, resp.Error.Code)
	s.Equal("Invalid club code. Please enter a valid code.", resp.Error.Message)
}

func (s *APISuite) TestRegisterDuplicateEmail() {
	s.user("taken@example.com", model.RoleMember)

	rr := s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "taken@example.com", "password": "password123", "code": "FCNG",
	}, "")
	s.Equal(http.StatusConflict, rr.Code)
	s.Equal(apierr.CodeEmailExists, s.errorCode(rr))
}

func (s *APISuite) TestRegisterRequiresACode() {
	rr := s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "parent@example.com", "password": "password123",
	}, "")
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(rr))
}

func (s *APISuite) TestLoginWrongPassword() {
	s.user("coach@example.com", model.RoleStaff)

	rr := s.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "coach@example.com", "password": "nope",
	}, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal(apierr.CodeInvalidCredentials, s.errorCode(rr))
}

func (s *APISuite) TestLoginAndLogout() {
	s.user("coach@example.com", model.RoleStaff)

	rr := s.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "coach@example.com", "password": "password123",
	}, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	var auth response.AuthResponse
	s.decode(rr, &auth)
	s.Equal("staff", auth.User.Role)

	rr = s.request(http.MethodPost, "/api/v1/auth/logout", nil, auth.SessionToken)
	s.Equal(http.StatusNoContent, rr.Code)

	rr = s.request(http.MethodGet, "/api/v1/me", nil, auth.SessionToken)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *APISuite) TestMeWithoutSession() {
	rr := s.request(http.MethodGet, "/api/v1/me", nil, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal(apierr.CodeUnauthorized, s.errorCode(rr))
}

func (s *APISuite) TestMeWithSessionCookie() {
	token := s.user("member@example.com", model.RoleMember)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	s.Equal(http.StatusOK, rr.Code)
}

// Invitations

func (s *APISuite) TestInviteRequiresAdmin() {
	for _, role := range []model.Role{model.RoleGuest, model.RoleMember, model.RoleStaff} {
		token := s.user(string(role)+"@example.com", role)
		rr := s.request(http.MethodPost, "/api/v1/invitations", map[string]string{
			"email": "new@example.com", "role": "staff",
		}, token)
		s.Equal(http.StatusForbidden, rr.Code, role)
	}
	s.Empty(s.app.MockNotifier.Messages())
}

func (s *APISuite) TestInviteAndRedeem() {
	admin := s.user("admin@example.com", model.RoleAdmin)
	s.app.MockRandom.QueueString("INVITE01")

	rr := s.request(http.MethodPost, "/api/v1/invitations", map[string]string{
		"email": "coach@example.com", "role": "staff",
	}, admin)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var invite response.InviteResponse
	s.decode(rr, &invite)
	s.True(invite.Notified)
	s.Equal("staff", invite.Invitation.Role)
	s.NotContains(rr.Body.String(), "INVITE01")

	msgs := s.app.MockNotifier.Messages()
	s.Require().Len(msgs, 1)
	s.Contains(msgs[0].Text, "INVITE01")

	rr = s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "coach@example.com", "password": "password123", "invite_code": "INVITE01",
	}, "")
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var auth response.AuthResponse
	s.decode(rr, &auth)
	s.Equal("staff", auth.User.Role)

	rr = s.request(http.MethodGet, fmt.Sprintf("/api/v1/clubs/%d/invitations", s.club.ID), nil, admin)
	s.Require().Equal(http.StatusOK, rr.Code)
	var invs []response.Invitation
	s.decode(rr, &invs)
	s.Require().Len(invs, 1)
	s.NotNil(invs[0].UsedAt)
}

func (s *APISuite) TestSuperadminInvitesIntoNamedClub() {
	other := s.app.CreateClub("OTHER", "Other FC")
	_, root := s.app.CreateUser("root@example.com", model.RoleSuperAdmin, 0)
	s.app.MockRandom.QueueString("INVITE02")

	rr := s.request(http.MethodPost, "/api/v1/invitations", map[string]any{
		"email": "boss@example.com", "role": "admin", "club_id": other.ID,
	}, root)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var invite response.InviteResponse
	s.decode(rr, &invite)
	s.Equal("admin", invite.Invitation.Role)
	s.Equal(int64(other.ID), invite.Invitation.ClubID)

	rr = s.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "boss@example.com", "password": "password123", "invite_code": "INVITE02",
	}, "")
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var auth response.AuthResponse
	s.decode(rr, &auth)
	s.Equal("admin", auth.User.Role)
	s.Equal(int64(other.ID), auth.User.ClubID)

	rr = s.request(http.MethodGet, fmt.Sprintf("/api/v1/clubs/%d/invitations", other.ID), nil, root)
	s.Require().Equal(http.StatusOK, rr.Code)
	var invs []response.Invitation
	s.decode(rr, &invs)
	s.Len(invs, 1)
}

func (s *APISuite) TestSuperadminInviteNeedsClubID() {
	_, root := s.app.CreateUser("root@example.com", model.RoleSuperAdmin, 0)

	rr := s.request(http.MethodPost, "/api/v1/invitations", map[string]string{
		"email": "boss@example.com", "role": "admin",
	}, root)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(rr))
	s.Empty(s.app.MockNotifier.Messages())
}

func (s *APISuite) TestAdminCannotInviteIntoAnotherClub() {
	other := s.app.CreateClub("OTHER", "Other FC")
	admin := s.user("admin@example.com", model.RoleAdmin)

	rr := s.request(http.MethodPost, "/api/v1/invitations", map[string]any{
		"email": "coach@example.com", "role": "staff", "club_id": other.ID,
	}, admin)
	s.Equal(http.StatusForbidden, rr.Code)
	s.Equal(apierr.CodeForbidden, s.errorCode(rr))
	s.Empty(s.app.MockNotifier.Messages())
}

func (s *APISuite) TestInviteRejectsInvalidRole() {
	admin := s.user("admin@example.com", model.RoleAdmin)

	rr := s.request(http.MethodPost, "/api/v1/invitations", map[string]string{
		"email": "boss@example.com", "role": "superadmin",
	}, admin)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidRole, s.errorCode(rr))
}

func (s *APISuite) TestListInvitationsOfAnotherClub() {
	other := s.app.CreateClub("OTHER", "Other FC")
	admin := s.user("admin@example.com", model.RoleAdmin)

	rr := s.request(http.MethodGet, fmt.Sprintf("/api/v1/clubs/%d/invitations", other.ID), nil, admin)
	s.Equal(http.StatusForbidden, rr.Code)
	s.Equal(apierr.CodeForbidden, s.errorCode(rr))
}

// Clubs

func (s *APISuite) TestCreateClubRequiresSuperadmin() {
	body := map[string]string{"name": "Academy", "code": "acad-1"}

	rr := s.request(http.MethodPost, "/api/v1/clubs", body, s.user("admin@example.com", model.RoleAdmin))
	s.Equal(http.StatusForbidden, rr.Code)

	_, root := s.app.CreateUser("root@example.com", model.RoleSuperAdmin, 0)
	rr = s.request(http.MethodPost, "/api/v1/clubs", body, root)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var c response.Club
	s.decode(rr, &c)
	s.Equal("ACAD-1", c.Code)

	rr = s.request(http.MethodPost, "/api/v1/clubs", body, root)
	s.Equal(http.StatusConflict, rr.Code)

	rr = s.request(http.MethodGet, "/api/v1/clubs", nil, root)
	var clubs []response.Club
	s.decode(rr, &clubs)
	s.Len(clubs, 2)
}

func (s *APISuite) TestListClubsShowsOwnClubOnly() {
	s.app.CreateClub("OTHER", "Other FC")
	token := s.user("member@example.com", model.RoleMember)

	rr := s.request(http.MethodGet, "/api/v1/clubs", nil, token)
	s.Require().Equal(http.StatusOK, rr.Code)
	var clubs []response.Club
	s.decode(rr, &clubs)
	s.Require().Len(clubs, 1)
	s.Equal("FCNG", clubs[0].Code)
}

func (s *APISuite) TestGetClubOutsideMembership() {
	other := s.app.CreateClub("OTHER", "Other FC")
	token := s.user("member@example.com", model.RoleMember)

	rr := s.request(http.MethodGet, fmt.Sprintf("/api/v1/clubs/%d", other.ID), nil, token)
	s.Equal(http.StatusForbidden, rr.Code)

	rr = s.request(http.MethodGet, fmt.Sprintf("/api/v1/clubs/%d", s.club.ID), nil, token)
	s.Equal(http.StatusOK, rr.Code)
}

// Teams and players

func (s *APISuite) TestTeamLifecycle() {
	staff := s.user("coach@example.com", model.RoleStaff)
	teamsPath := fmt.Sprintf("/api/v1/clubs/%d/teams", s.club.ID)

	rr := s.request(http.MethodPost, teamsPath, map[string]string{"name": "U12", "age_group": "U12"}, staff)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var team response.Team
	s.decode(rr, &team)

	member := s.user("member@example.com", model.RoleMember)
	rr = s.request(http.MethodPost, teamsPath, map[string]string{"name": "U14"}, member)
	s.Equal(http.StatusForbidden, rr.Code)
	s.Equal(apierr.CodeForbidden, s.errorCode(rr))

	rr = s.request(http.MethodGet, teamsPath, nil, staff)
	var teams []response.Team
	s.decode(rr, &teams)
	s.Len(teams, 1)

	// Deletion is restricted to the staff role exactly
	admin := s.user("admin@example.com", model.RoleAdmin)
	rr = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/teams/%d", team.ID), nil, admin)
	s.Equal(http.StatusForbidden, rr.Code)

	rr = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/teams/%d", team.ID), nil, staff)
	s.Equal(http.StatusNoContent, rr.Code)

	rr = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/teams/%d", team.ID), nil, staff)
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *APISuite) TestCreateTeamValidation() {
	staff := s.user("coach@example.com", model.RoleStaff)

	rr := s.request(http.MethodPost, fmt.Sprintf("/api/v1/clubs/%d/teams", s.club.ID), map[string]string{"name": " "}, staff)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeValidation, s.errorCode(rr))
}

func (s *APISuite) TestPlayerLifecycle() {
	staff := s.user("coach@example.com", model.RoleStaff)
	playersPath := fmt.Sprintf("/api/v1/clubs/%d/players", s.club.ID)

	rr := s.request(http.MethodPost, playersPath, map[string]string{
		"first_name": "Rui", "last_name": "Costa", "position": "midfielder",
	}, staff)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var player response.Player
	s.decode(rr, &player)
	s.Nil(player.TeamID)

	member := s.user("member@example.com", model.RoleMember)
	rr = s.request(http.MethodPost, playersPath, map[string]string{
		"first_name": "Ana", "last_name": "Silva",
	}, member)
	s.Equal(http.StatusForbidden, rr.Code)
	s.Equal(apierr.CodeForbidden, s.errorCode(rr))

	rr = s.request(http.MethodGet, playersPath, nil, member)
	var players []response.Player
	s.decode(rr, &players)
	s.Len(players, 1)

	rr = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/players/%d", player.ID), nil, staff)
	s.Equal(http.StatusNoContent, rr.Code)
}

func (s *APISuite) TestDeletePlayerOfAnotherClub() {
	other := s.app.CreateClub("OTHER", "Other FC")
	p, err := s.app.ClubService.CreatePlayer(s.T().Context(), other.ID, clubPlayer("Ana"))
	s.Require().NoError(err)

	rr := s.request(http.MethodDelete, fmt.Sprintf("/api/v1/players/%d", p.ID), nil, s.user("coach@example.com", model.RoleStaff))
	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *APISuite) TestListStaff() {
	s.user("coach@example.com", model.RoleStaff)
	token := s.user("member@example.com", model.RoleMember)

	rr := s.request(http.MethodGet, fmt.Sprintf("/api/v1/clubs/%d/staff", s.club.ID), nil, token)
	s.Require().Equal(http.StatusOK, rr.Code)
	var staff []response.StaffMember
	s.decode(rr, &staff)
	s.Len(staff, 1)
}

func (s *APISuite) TestInvalidJSONBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apierr.CodeInvalidRequest, s.errorCode(rr))
}

func (s *APISuite) TestResponsesCarryRequestID() {
	rr := s.request(http.MethodGet, "/api/v1/me", nil, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

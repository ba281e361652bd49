package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
)

type PostgresSuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store *Storage
	ctx   context.Context
	now   time.Time
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.db = db
	s.mock = mock
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for range schema {
		s.mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	s.store, err = New(s.ctx, db)
	s.Require().NoError(err)
}

func (s *PostgresSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	_ = s.db.Close()
}

func (s *PostgresSuite) TestNewRequiresDatabase() {
	_, err := New(s.ctx, nil)
	s.Error(err)
}

func (s *PostgresSuite) TestNewSchemaFailure() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS auth_users").WillReturnError(errors.New("permission denied"))

	_, err = New(s.ctx, db)
	s.ErrorContains(err, "ensure schema")
	s.NoError(mock.ExpectationsWereMet())
}

// Identity tests

func (s *PostgresSuite) TestCreateIdentityInsertsProfileInTransaction() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO auth_users").
		WithArgs("u1", "alice@example.com", "hash", "Alice", "Smith", int64(3), "member", s.now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectExec("INSERT INTO profiles").
		WithArgs("u1", "guest", s.now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	err := s.store.CreateIdentity(s.ctx, &model.Identity{
		ID:           "u1",
		Email:        "Alice@Example.com",
		PasswordHash: "hash",
		Metadata:     model.IdentityMetadata{FirstName: "Alice", LastName: "Smith", ClubID: 3, Role: model.RoleMember},
		CreatedAt:    s.now,
	})
	s.NoError(err)
}

func (s *PostgresSuite) TestCreateIdentityDuplicateEmail() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO auth_users").WillReturnError(&pq.Error{Code: uniqueViolation})
	s.mock.ExpectRollback()

	err := s.store.CreateIdentity(s.ctx, &model.Identity{ID: "u1", Email: "a@b.com", CreatedAt: s.now})
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *PostgresSuite) TestGetIdentityByEmailNotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM auth_users WHERE email = $1")).
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := s.store.GetIdentityByEmail(s.ctx, " Missing@Example.com ")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *PostgresSuite) TestGetIdentity() {
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "club_id", "role", "created_at"}).
		AddRow("u1", "alice@example.com", "hash", "Alice", "Smith", int64(3), "member", s.now)
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM auth_users WHERE id = $1")).WithArgs("u1").WillReturnRows(rows)

	identity, err := s.store.GetIdentity(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("alice@example.com", identity.Email)
	s.Equal(model.ClubID(3), identity.Metadata.ClubID)
	s.Equal(model.RoleMember, identity.Metadata.Role)
}

// Profile tests

func (s *PostgresSuite) TestGetProfileNotFound() {
	s.mock.ExpectQuery("FROM profiles WHERE id").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := s.store.GetProfile(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *PostgresSuite) TestGetProfileQueryError() {
	s.mock.ExpectQuery("FROM profiles WHERE id").WithArgs("u1").WillReturnError(errors.New("connection reset"))

	_, err := s.store.GetProfile(s.ctx, "u1")
	s.ErrorIs(err, model.ErrPersistence)
	s.NotErrorIs(err, model.ErrProfileNotFound)
}

func (s *PostgresSuite) TestUpdateProfile() {
	s.mock.ExpectExec(regexp.QuoteMeta("updated_at = $6")).
		WithArgs("u1", "staff", int64(2), "Alice", "Smith", s.now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.store.UpdateProfile(s.ctx, &model.Profile{
		ID: "u1", Role: model.RoleStaff, ClubID: 2, FirstName: "Alice", LastName: "Smith", UpdatedAt: s.now,
	})
	s.NoError(err)
}

func (s *PostgresSuite) TestUpdateProfileWriteFailure() {
	s.mock.ExpectExec("UPDATE profiles").WillReturnError(errors.New("connection reset"))

	err := s.store.UpdateProfile(s.ctx, &model.Profile{ID: "u1", Role: model.RoleMember, UpdatedAt: s.now})
	s.ErrorIs(err, model.ErrPersistence)
	s.NotErrorIs(err, model.ErrProfileNotFound)
	s.ErrorContains(err, "connection reset")
}

func (s *PostgresSuite) TestUpdateProfileMissingRow() {
	s.mock.ExpectExec("UPDATE profiles").WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.store.UpdateProfile(s.ctx, &model.Profile{ID: "ghost", Role: model.RoleMember})
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *PostgresSuite) TestListProfilesForClubWithRole() {
	rows := sqlmock.NewRows([]string{"id", "role", "club_id", "first_name", "last_name", "updated_at"}).
		AddRow("u1", "staff", int64(1), "Alice", "Smith", s.now)
	s.mock.ExpectQuery(regexp.QuoteMeta("WHERE club_id = $1 AND role = $2 ORDER BY last_name, id")).
		WithArgs(int64(1), "staff").
		WillReturnRows(rows)

	profiles, err := s.store.ListProfilesForClub(s.ctx, 1, model.RoleStaff)
	s.Require().NoError(err)
	s.Require().Len(profiles, 1)
	s.Equal(model.RoleStaff, profiles[0].Role)
}

// Club tests

func (s *PostgresSuite) TestCreateClubReturnsID() {
	s.mock.ExpectQuery("INSERT INTO clubs").
		WithArgs("FCNG", "NextGen FC", s.now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	club := &model.Club{Code: "FCNG", Name: "NextGen FC", CreatedAt: s.now}
	s.Require().NoError(s.store.CreateClub(s.ctx, club))
	s.Equal(model.ClubID(7), club.ID)
}

func (s *PostgresSuite) TestCreateClubDuplicateCode() {
	s.mock.ExpectQuery("INSERT INTO clubs").WillReturnError(&pq.Error{Code: uniqueViolation})

	err := s.store.CreateClub(s.ctx, &model.Club{Code: "FCNG", CreatedAt: s.now})
	s.ErrorIs(err, model.ErrClubCodeExists)
}

func (s *PostgresSuite) TestGetClubByCodeNotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM clubs WHERE code = $1")).
		WithArgs("BADCODE").
		WillReturnError(sql.ErrNoRows)

	_, err := s.store.GetClubByCode(s.ctx, "BADCODE")
	s.ErrorIs(err, model.ErrClubNotFound)
}

func (s *PostgresSuite) TestListClubs() {
	rows := sqlmock.NewRows([]string{"id", "code", "name", "created_at"}).
		AddRow(int64(1), "A", "Alpha", s.now).
		AddRow(int64(2), "B", "Beta", s.now)
	s.mock.ExpectQuery("FROM clubs ORDER BY id").WillReturnRows(rows)

	clubs, err := s.store.ListClubs(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(clubs, 2)
	s.Equal("Beta", clubs[1].Name)
}

// Invitation tests

func (s *PostgresSuite) TestSaveInvitation() {
	expires := s.now.Add(7 * 24 * time.Hour)
	s.mock.ExpectExec("INSERT INTO invitations").
		WithArgs("Ab3dE6gH", "a@b.com", int64(1), "member", expires, s.now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.store.SaveInvitation(s.ctx, &model.Invitation{
		Email: "a@b.com", ClubID: 1, Role: model.RoleMember,
		InviteCode: "Ab3dE6gH", ExpiresAt: expires, CreatedAt: s.now,
	})
	s.NoError(err)
}

func (s *PostgresSuite) TestSaveInvitationCodeCollision() {
	s.mock.ExpectExec("INSERT INTO invitations").WillReturnError(&pq.Error{Code: uniqueViolation})

	err := s.store.SaveInvitation(s.ctx, &model.Invitation{InviteCode: "SAMECODE"})
	s.ErrorIs(err, model.ErrInviteCodeExists)
}

func (s *PostgresSuite) TestSaveInvitationWriteFailure() {
	s.mock.ExpectExec("INSERT INTO invitations").WillReturnError(errors.New("disk full"))

	err := s.store.SaveInvitation(s.ctx, &model.Invitation{InviteCode: "CODE1234"})
	s.ErrorContains(err, "insert invitation")
	s.ErrorIs(err, model.ErrPersistence)
	s.NotErrorIs(err, model.ErrInviteCodeExists)
}

func (s *PostgresSuite) TestGetInvitationByCodeConsumed() {
	rows := sqlmock.NewRows([]string{"invite_code", "email", "club_id", "role", "expires_at", "created_at", "consumed_at"}).
		AddRow("CODE1234", "a@b.com", int64(1), "staff", s.now.Add(time.Hour), s.now, s.now)
	s.mock.ExpectQuery("FROM invitations WHERE invite_code").WithArgs("CODE1234").WillReturnRows(rows)

	inv, err := s.store.GetInvitationByCode(s.ctx, "CODE1234")
	s.Require().NoError(err)
	s.Equal(model.RoleStaff, inv.Role)
	s.True(inv.Consumed())
}

func (s *PostgresSuite) TestConsumeInvitation() {
	s.mock.ExpectExec("UPDATE invitations SET consumed_at").
		WithArgs("CODE1234", s.now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.store.ConsumeInvitation(s.ctx, "CODE1234", s.now))
}

func (s *PostgresSuite) TestConsumeInvitationAlreadyConsumed() {
	s.mock.ExpectExec("UPDATE invitations SET consumed_at").WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectQuery("SELECT EXISTS").WithArgs("CODE1234").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := s.store.ConsumeInvitation(s.ctx, "CODE1234", s.now)
	s.ErrorIs(err, model.ErrInvitationConsumed)
}

func (s *PostgresSuite) TestConsumeInvitationUnknownCode() {
	s.mock.ExpectExec("UPDATE invitations SET consumed_at").WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectQuery("SELECT EXISTS").WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := s.store.ConsumeInvitation(s.ctx, "NOPE", s.now)
	s.ErrorIs(err, model.ErrInvitationNotFound)
}

// Team and player tests

func (s *PostgresSuite) TestDeleteTeamNotFound() {
	s.mock.ExpectExec("DELETE FROM teams").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	s.ErrorIs(s.store.DeleteTeam(s.ctx, 9), model.ErrTeamNotFound)
}

func (s *PostgresSuite) TestCreatePlayerWithoutTeam() {
	s.mock.ExpectQuery("INSERT INTO players").
		WithArgs(int64(1), nil, "Leo", "Messi", "FW", nil, s.now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	player := &model.Player{ClubID: 1, FirstName: "Leo", LastName: "Messi", Position: "FW", CreatedAt: s.now}
	s.Require().NoError(s.store.CreatePlayer(s.ctx, player))
	s.Equal(model.PlayerID(4), player.ID)
}

func (s *PostgresSuite) TestGetPlayerWithTeam() {
	birth := time.Date(2012, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "club_id", "team_id", "first_name", "last_name", "position", "birth_date", "created_at"}).
		AddRow(int64(4), int64(1), int64(2), "Leo", "Messi", "FW", birth, s.now)
	s.mock.ExpectQuery("FROM players WHERE id").WithArgs(int64(4)).WillReturnRows(rows)

	player, err := s.store.GetPlayer(s.ctx, 4)
	s.Require().NoError(err)
	s.Require().NotNil(player.TeamID)
	s.Equal(model.TeamID(2), *player.TeamID)
	s.Require().NotNil(player.BirthDate)
	s.True(birth.Equal(*player.BirthDate))
}

func (s *PostgresSuite) TestDeletePlayer() {
	s.mock.ExpectExec("DELETE FROM players").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.store.DeletePlayer(s.ctx, 4))
}

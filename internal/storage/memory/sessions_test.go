package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
)

type SessionStoreSuite struct {
	suite.Suite
	store *SessionStore
	ctx   context.Context
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = NewSessionStore()
	s.ctx = context.Background()
}

func (s *SessionStoreSuite) save(token string, userID model.UserID) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.SaveSession(s.ctx, &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))
}

func (s *SessionStoreSuite) TestSaveAndGet() {
	s.save("tok", "u1")

	got, err := s.store.GetSession(s.ctx, "tok")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), got.UserID)
}

func (s *SessionStoreSuite) TestGetReturnsCopy() {
	s.save("tok", "u1")

	got, _ := s.store.GetSession(s.ctx, "tok")
	got.UserID = "changed"

	again, _ := s.store.GetSession(s.ctx, "tok")
	s.Equal(model.UserID("u1"), again.UserID)
}

func (s *SessionStoreSuite) TestGetUnknown() {
	_, err := s.store.GetSession(s.ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *SessionStoreSuite) TestDeleteSession() {
	s.save("tok", "u1")

	s.Require().NoError(s.store.DeleteSession(s.ctx, "tok"))
	s.NoError(s.store.DeleteSession(s.ctx, "tok"))

	_, err := s.store.GetSession(s.ctx, "tok")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *SessionStoreSuite) TestDeleteSessionsForUserLeavesOthers() {
	s.save("a1", "alice")
	s.save("a2", "alice")
	s.save("b1", "bob")

	s.Require().NoError(s.store.DeleteSessionsForUser(s.ctx, "alice"))

	_, err := s.store.GetSession(s.ctx, "a1")
	s.ErrorIs(err, model.ErrSessionNotFound)
	_, err = s.store.GetSession(s.ctx, "a2")
	s.ErrorIs(err, model.ErrSessionNotFound)
	_, err = s.store.GetSession(s.ctx, "b1")
	s.NoError(err)
}

package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ricardozepinto10/NextGenAcademy/internal/dependencies/mocks"
	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/auth"
	"github.com/ricardozepinto10/NextGenAcademy/internal/services/invitation"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage/memory"
	"github.com/ricardozepinto10/NextGenAcademy/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	MockNotifier *mocks.MockNotifier
	MemStore     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockNotifier := mocks.NewMockNotifier()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(deps{
		store:         store,
		sessions:      memory.NewSessionStore(),
		clock:         mockClock,
		random:        mockRandom,
		notifier:      mockNotifier,
		authCfg:       authCfg,
		invitationCfg: invitation.DefaultConfig(),
		logger:        testutil.NopLogger(),
	})

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		MockNotifier: mockNotifier,
		MemStore:     store,
	}
}

// CreateClub adds a club directly to storage
func (t *TestApp) CreateClub(code, name string) *model.Club {
	c := &model.Club{Code: code, Name: name, CreatedAt: t.MockClock.Now()}
	if err := t.Storage.CreateClub(context.Background(), c); err != nil {
		panic(err)
	}
	return c
}

// CreateUser signs up a user with the given role and club and signs them in,
// returning the session token
func (t *TestApp) CreateUser(email string, role model.Role, clubID model.ClubID) (model.UserID, string) {
	ctx := context.Background()
	identity, err := t.AuthService.SignUp(ctx, email, "password123", model.IdentityMetadata{ClubID: clubID, Role: role})
	if err != nil {
		panic(err)
	}
	if err := t.Storage.UpdateProfile(ctx, &model.Profile{ID: identity.ID, Role: role, ClubID: clubID}); err != nil {
		panic(err)
	}
	sess, err := t.AuthService.SignInWithPassword(ctx, email, "password123")
	if err != nil {
		panic(err)
	}
	return identity.ID, sess.Token
}

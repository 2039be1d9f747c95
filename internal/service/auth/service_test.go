package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eventoria/internal/config"
	"eventoria/internal/domain"
	"eventoria/internal/mocks"
	"eventoria/internal/pkg/validation"
	"eventoria/internal/repository"
)

type closerSpy struct {
	closed []uuid.UUID
}

func (c *closerSpy) CloseSessions(ctx context.Context, userID uuid.UUID) {
	c.closed = append(c.closed, userID)
}

func newTestService() (*service, *mocks.UserRepository, *mocks.SessionRepository, *closerSpy) {
	users := new(mocks.UserRepository)
	sessions := new(mocks.SessionRepository)
	closer := &closerSpy{}
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	svc := NewService(users, sessions, new(mocks.EmailService), closer, validation.New(time.UTC), cfg).(*service)
	return svc, users, sessions, closer
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	svc, users, sessions, _ := newTestService()
	ctx := WithClientInfo(context.Background(), ClientInfo{IP: "10.0.0.1", UserAgent: "test-agent"})

	users.On("ExistsByEmail", ctx, "ion@example.ro").Return(false, nil).Once()
	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ion@example.ro" && u.Role == domain.RoleVendor && u.IsActive
	})).Return(nil).Once()
	sessions.On("Create", ctx, mock.MatchedBy(func(s *repository.Session) bool {
		return s.IPAddress != nil && *s.IPAddress == "10.0.0.1" &&
			s.UserAgent != nil && *s.UserAgent == "test-agent"
	})).Return(nil).Once()

	user, tokens, err := svc.Register(ctx, domain.RegisterInput{
		FullName:        "Ion Popescu",
		Email:           " Ion@Example.ro ",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            domain.RoleVendor,
	})

	require.NoError(t, err)
	assert.Equal(t, "ion@example.ro", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleVendor, claims.Role)

	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	svc, users, _, _ := newTestService()

	_, _, err := svc.Register(context.Background(), domain.RegisterInput{
		FullName:        "Ion Popescu",
		Email:           "ion@example.ro",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            domain.RoleAdmin,
	})

	var fe domain.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.True(t, fe.Has("role"))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()

	users.On("ExistsByEmail", ctx, "ion@example.ro").Return(true, nil).Once()

	_, _, err := svc.Register(ctx, domain.RegisterInput{
		FullName:        "Ion Popescu",
		Email:           "ion@example.ro",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            domain.RoleParticipant,
	})

	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, users, sessions, _ := newTestService()
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "ana@example.ro", PasswordHash: hashed(t, "secret1"), IsActive: true}

	t.Run("Wrong password", func(t *testing.T) {
		users.On("GetByEmail", ctx, "ana@example.ro").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.ro", Password: "nope"})

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("Unknown user", func(t *testing.T) {
		users.On("GetByEmail", ctx, "ghost@example.ro").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ghost@example.ro", Password: "secret1"})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Disabled", func(t *testing.T) {
		disabled := *user
		disabled.IsActive = false
		users.On("GetByEmail", ctx, "ana@example.ro").Return(&disabled, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.ro", Password: "secret1"})

		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Success", func(t *testing.T) {
		users.On("GetByEmail", ctx, "ana@example.ro").Return(user, nil).Once()
		sessions.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "ANA@example.ro", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestRefreshToken_UnknownSession(t *testing.T) {
	svc, _, sessions, _ := newTestService()
	ctx := context.Background()

	sessions.On("GetByTokenHash", ctx, hashToken("stale")).Return(nil, nil).Once()

	_, err := svc.RefreshToken(ctx, "stale")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_ClosesRealtimeSessions(t *testing.T) {
	svc, _, sessions, closer := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	sessions.On("RevokeAllForUser", ctx, userID).Return(nil).Once()

	require.NoError(t, svc.Logout(ctx, userID))
	assert.Equal(t, []uuid.UUID{userID}, closer.closed)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ValidateAccessToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPassword_Expired(t *testing.T) {
	svc, users, _, _ := newTestService()
	ctx := context.Background()
	expired := time.Now().Add(-time.Minute)
	users.On("GetUserByResetToken", ctx, "tok").Return(&domain.User{ID: uuid.New(), PasswordResetExpiresAt: &expired}, nil).Once()

	err := svc.ResetPassword(ctx, domain.ResetPasswordInput{Token: "tok", NewPassword: "secret2"})

	assert.ErrorIs(t, err, ErrTokenExpired)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMessageFor(t *testing.T) {
	assert.NotEqual(t, "auth.email_in_use", MessageFor(ErrEmailExists))
	assert.Equal(t, MessageFor(ErrWrongPassword), MessageFor(ErrWrongPassword))
	assert.NotEqual(t, MessageFor(ErrWrongPassword), MessageFor(ErrUserNotFound))
	assert.Equal(t, MessageFor(assert.AnError), MessageFor(nil))
}

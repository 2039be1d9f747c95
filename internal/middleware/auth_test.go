package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventoria/internal/domain"
	"eventoria/internal/service/auth"
)

type authServiceMock struct {
	mock.Mock
	auth.Service
}

func (m *authServiceMock) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *authServiceMock) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newProtectedApp(svc auth.Service, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	handlers := append([]fiber.Handler{AuthRequired(svc)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(GetCurrentUserID(c).String())
	})
	app.Get("/me", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthRequired(t *testing.T) {
	svc := new(authServiceMock)
	app := newProtectedApp(svc)

	active := &domain.User{ID: uuid.New(), Role: domain.RoleParticipant, IsActive: true}
	disabled := &domain.User{ID: uuid.New(), Role: domain.RoleParticipant}

	svc.On("ValidateAccessToken", "good").Return(&auth.Claims{UserID: active.ID}, nil)
	svc.On("ValidateAccessToken", "disabled").Return(&auth.Claims{UserID: disabled.ID}, nil)
	svc.On("ValidateAccessToken", "bad").Return(nil, auth.ErrInvalidToken)
	svc.On("GetUserByID", mock.Anything, active.ID).Return(active, nil)
	svc.On("GetUserByID", mock.Anything, disabled.ID).Return(disabled, nil)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "bad"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "disabled"))
	assert.Equal(t, fiber.StatusOK, get(t, app, "good"))
}

func TestRequireRole(t *testing.T) {
	svc := new(authServiceMock)
	app := newProtectedApp(svc, RequireRole(domain.RoleVendor))

	vendor := &domain.User{ID: uuid.New(), Role: domain.RoleVendor, IsActive: true}
	participant := &domain.User{ID: uuid.New(), Role: domain.RoleParticipant, IsActive: true}
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, IsActive: true}
	for token, u := range map[string]*domain.User{"vendor": vendor, "participant": participant, "admin": admin} {
		svc.On("ValidateAccessToken", token).Return(&auth.Claims{UserID: u.ID}, nil)
		svc.On("GetUserByID", mock.Anything, u.ID).Return(u, nil)
	}

	assert.Equal(t, fiber.StatusOK, get(t, app, "vendor"))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "participant"))
	assert.Equal(t, fiber.StatusOK, get(t, app, "admin"))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(domain.RoleParticipant, PermBookService))
	assert.False(t, HasPermission(domain.RoleParticipant, PermSubmitService))
	assert.True(t, HasPermission(domain.RoleVendor, PermManageBookings))
	assert.False(t, HasPermission(domain.RoleVendor, PermReviewRequests))
	assert.True(t, HasPermission(domain.RoleAdmin, PermDeleteAccounts))
	assert.False(t, HasPermission(domain.Role("guest"), PermBookService))
}

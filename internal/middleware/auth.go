package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eventoria/internal/domain"
	"eventoria/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return Unauthorized(auth.MessageFor(auth.ErrInvalidToken))
		}

		user, err := resolveUser(c, authService, token)
		if err != nil {
			return err
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// OptionalAuth sets the current user when a valid token is sent and lets
// anonymous requests through otherwise.
func OptionalAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}

		if user, err := resolveUser(c, authService, token); err == nil {
			c.Locals(UserContextKey, user)
			c.Locals(UserIDContextKey, user.ID)
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func resolveUser(c *fiber.Ctx, authService auth.Service, token string) (*domain.User, error) {
	claims, err := authService.ValidateAccessToken(token)
	if err != nil {
		return nil, Unauthorized(auth.MessageFor(err))
	}

	user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
	if err != nil || user == nil {
		return nil, Unauthorized(auth.MessageFor(auth.ErrInvalidToken))
	}
	if !user.IsActive {
		return nil, Unauthorized(auth.MessageFor(auth.ErrUserDisabled))
	}
	return user, nil
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

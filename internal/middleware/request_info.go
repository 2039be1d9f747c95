package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eventoria/internal/pkg/i18n"
	"eventoria/internal/service/auth"
)

const (
	ClientIPContextKey  = "client_ip"
	UserAgentContextKey = "user_agent"
)

// RequestInfo records the caller's real IP (Cloudflare aware) and user agent
// in Locals and in the request's user context.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("CF-Connecting-IP")
		if ip == "" {
			ip = c.IP()
		}
		ua := c.Get(fiber.HeaderUserAgent)

		c.Locals(ClientIPContextKey, ip)
		c.Locals(UserAgentContextKey, ua)
		c.SetUserContext(auth.WithClientInfo(c.UserContext(), auth.ClientInfo{IP: ip, UserAgent: ua}))

		return c.Next()
	}
}

func ClientIP(c *fiber.Ctx) string {
	if ip, ok := c.Locals(ClientIPContextKey).(string); ok && ip != "" {
		return ip
	}
	return c.IP()
}

// GetUserID returns the authenticated user's id or a 401 error.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID := GetCurrentUserID(c)
	if userID == uuid.Nil {
		return uuid.Nil, Unauthorized(i18n.T("errors.unauthorized"))
	}
	return userID, nil
}

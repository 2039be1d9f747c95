package middleware

import (
	"github.com/gofiber/fiber/v2"

	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
)

type Permission string

const (
	PermBookService      Permission = "book_service"
	PermSubmitService    Permission = "submit_service"
	PermManageListings   Permission = "manage_listings"
	PermManageBookings   Permission = "manage_bookings"
	PermUploadMedia      Permission = "upload_media"
	PermReviewRequests   Permission = "review_requests"
	PermViewDashboard    Permission = "view_dashboard"
	PermDeleteAccounts   Permission = "delete_accounts"
	PermDeleteAnyListing Permission = "delete_any_listing"
)

var rolePermissions = map[domain.Role]map[Permission]bool{
	domain.RoleParticipant: {
		PermBookService: true,
	},
	domain.RoleVendor: {
		PermSubmitService:  true,
		PermManageListings: true,
		PermManageBookings: true,
		PermUploadMedia:    true,
	},
	domain.RoleAdmin: {
		PermBookService:      true,
		PermUploadMedia:      true,
		PermReviewRequests:   true,
		PermViewDashboard:    true,
		PermDeleteAccounts:   true,
		PermDeleteAnyListing: true,
	},
}

func RequireRole(requiredRole domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized(i18n.T("errors.unauthorized"))
		}

		if !user.HasRole(requiredRole) {
			return Forbidden(i18n.T("errors.forbidden"))
		}

		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized(i18n.T("errors.unauthorized"))
		}

		for _, role := range roles {
			if user.HasRole(role) {
				return c.Next()
			}
		}

		return Forbidden(i18n.T("errors.forbidden"))
	}
}

func RequirePermission(permission Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized(i18n.T("errors.unauthorized"))
		}

		if !HasPermission(user.Role, permission) {
			return Forbidden(i18n.T("errors.forbidden"))
		}

		return c.Next()
	}
}

func HasPermission(role domain.Role, permission Permission) bool {
	return rolePermissions[role][permission]
}

func IsAdmin(c *fiber.Ctx) bool {
	user := GetCurrentUser(c)
	return user != nil && user.IsAdmin()
}

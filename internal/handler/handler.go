package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eventoria/internal/domain"
	"eventoria/internal/middleware"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Catalog      *CatalogHandler
	Listing      *ListingHandler
	Approval     *ApprovalHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
	Media        *MediaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Catalog:      NewCatalogHandler(services.Catalog),
		Listing:      NewListingHandler(services.Listing),
		Approval:     NewApprovalHandler(services.Approval),
		Booking:      NewBookingHandler(services.Booking),
		Notification: NewNotificationHandler(services.Notification),
		Admin:        NewAdminHandler(services.Admin),
		Media:        NewMediaHandler(services.Media),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", domain.DefaultPageSize); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest(i18n.T("errors.not_found"))
	}
	return id, nil
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return nil, middleware.Unauthorized(i18n.T("errors.unauthorized"))
	}
	return user, nil
}

func invalidBody() error {
	return middleware.BadRequest("Invalid request body")
}

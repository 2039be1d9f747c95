package handler

import (
	"github.com/gofiber/fiber/v2"

	"eventoria/internal/domain"
	"eventoria/internal/middleware"
	"eventoria/internal/service/catalog"
)

type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": categories})
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.catalogService.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(category)
}

func (h *CatalogHandler) ListListings(c *fiber.Ctx) error {
	var filter domain.ListingFilter
	if err := c.QueryParser(&filter); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}

	result, err := h.catalogService.ListListings(c.UserContext(), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CatalogHandler) GetListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	listing, err := h.catalogService.GetListing(c.UserContext(), id, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(listing)
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"eventoria/internal/domain"
	"eventoria/internal/middleware"
	"eventoria/internal/service/listing"
)

type ListingHandler struct {
	listingService listing.Service
}

func NewListingHandler(listingService listing.Service) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

func (h *ListingHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	listings, err := h.listingService.ListByVendor(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": listings})
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateListingInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	updated, err := h.listingService.Update(c.UserContext(), userID, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.listingService.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

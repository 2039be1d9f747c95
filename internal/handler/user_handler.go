package handler

import (
	"github.com/gofiber/fiber/v2"

	"eventoria/internal/middleware"
	"eventoria/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.Me(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteAccount(c.UserContext(), userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) ListFavorites(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	listings, err := h.userService.Favorites(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": listings})
}

func (h *UserHandler) AddFavorite(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	listingID, err := parseID(c, "listingId")
	if err != nil {
		return err
	}

	if err := h.userService.AddFavorite(c.UserContext(), userID, listingID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) RemoveFavorite(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	listingID, err := parseID(c, "listingId")
	if err != nil {
		return err
	}

	if err := h.userService.RemoveFavorite(c.UserContext(), userID, listingID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

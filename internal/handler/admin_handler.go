package handler

import (
	"github.com/gofiber/fiber/v2"

	"eventoria/internal/service/admin"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.adminService.Dashboard(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dashboard)
}

func (h *AdminHandler) Vendors(c *fiber.Ctx) error {
	vendors, err := h.adminService.Vendors(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": vendors})
}

func (h *AdminHandler) DeleteVendor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteVendor(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) DeleteListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteListing(c.UserContext(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

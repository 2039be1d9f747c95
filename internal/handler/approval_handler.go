package handler

import (
	"github.com/gofiber/fiber/v2"

	"eventoria/internal/domain"
	"eventoria/internal/middleware"
	"eventoria/internal/service/approval"
)

type ApprovalHandler struct {
	approvalService approval.Service
}

func NewApprovalHandler(approvalService approval.Service) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) Submit(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var form domain.ServiceForm
	if err := c.BodyParser(&form); err != nil {
		return invalidBody()
	}

	req, err := h.approvalService.Submit(c.UserContext(), user, form)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *ApprovalHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	reqs, err := h.approvalService.ListMine(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": reqs})
}

func (h *ApprovalHandler) ListForReview(c *fiber.Ctx) error {
	var status *domain.ApprovalStatus
	if s := c.Query("status"); s != "" {
		st := domain.ApprovalStatus(s)
		status = &st
	}

	result, err := h.approvalService.ListForReview(c.UserContext(), status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.ReviewInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return invalidBody()
		}
	}

	req, listing, err := h.approvalService.Approve(c.UserContext(), adminID, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"request": req,
		"listing": listing,
	})
}

func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.ReviewInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return invalidBody()
		}
	}

	req, err := h.approvalService.Reject(c.UserContext(), adminID, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"request": req})
}

package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"eventoria/internal/domain"
	"eventoria/internal/service/booking"
)

type BookingHandler struct {
	bookingService booking.Service
}

func NewBookingHandler(bookingService booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	b, err := h.bookingService.Create(c.UserContext(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var filter domain.BookingFilter
	if s := c.Query("status"); s != "" {
		st := domain.BookingStatus(s)
		filter.Status = &st
	}

	result, err := h.bookingService.List(c.UserContext(), user, filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	b, err := h.bookingService.Get(c.UserContext(), user, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(b)
}

func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateBookingStatusInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	b, err := h.bookingService.UpdateStatus(c.UserContext(), user, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(b)
}

func (h *BookingHandler) AddMessage(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input domain.AddMessageInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	msg, err := h.bookingService.AddMessage(c.UserContext(), user, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.bookingService.Confirm(c.UserContext(), user, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(event)
}

func (h *BookingHandler) ListConfirmed(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	events, err := h.bookingService.ListConfirmed(c.UserContext(), user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": events})
}

func (h *BookingHandler) GetConfirmed(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.bookingService.GetConfirmed(c.UserContext(), user, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(event)
}

func (h *BookingHandler) ConfirmationDocument(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	pdf, filename, err := h.bookingService.ConfirmationDocument(c.UserContext(), user, id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(pdf)
}

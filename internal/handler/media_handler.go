package handler

import (
	"github.com/gofiber/fiber/v2"

	"eventoria/internal/domain"
	"eventoria/internal/middleware"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) UploadImage(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		var errs domain.FieldErrors
		errs.Add("file", i18n.T("validation.upload.file.required"))
		return errs
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	url, err := h.mediaService.UploadImage(c.UserContext(), userID, file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
)

type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	TraceID string              `json:"trace_id,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

var domainErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "errors.not_found"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "errors.forbidden"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "errors.unauthorized"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "errors.conflict"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", "errors.invalid_transition"},
	{domain.ErrStaleState, fiber.StatusConflict, "INVALID_TRANSITION", "errors.invalid_transition"},
	{domain.ErrUnavailable, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "errors.unavailable"},
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	resp := ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: i18n.T("errors.internal"),
		TraceID: uuid.New().String()[:8],
	}
	code := fiber.StatusInternalServerError

	var fieldErrs domain.FieldErrors
	var fe *fiber.Error

	switch {
	case errors.As(err, &fieldErrs):
		code = fiber.StatusUnprocessableEntity
		resp.Code = "VALIDATION_ERROR"
		resp.Message = i18n.T("errors.validation")
		if len(fieldErrs) > 0 {
			resp.Message = fieldErrs[0].Message
		}
		resp.Fields = fieldErrs
	case errors.As(err, &fe):
		code = fe.Code
		resp.Message = fe.Message
		resp.Code = codeForStatus(code)
	default:
		for _, de := range domainErrors {
			if errors.Is(err, de.err) {
				code = de.status
				resp.Code = de.code
				resp.Message = i18n.T(de.message)
				break
			}
		}
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("trace_id", resp.TraceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}

	return c.Status(code).JSON(resp)
}

func codeForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}

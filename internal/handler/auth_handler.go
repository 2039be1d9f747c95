package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"eventoria/internal/domain"
	"eventoria/internal/middleware"
	"eventoria/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// authError converts auth sentinels to HTTP errors with the Romanian text.
// Anything else, validation included, passes through to the error handler.
func authError(err error) error {
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		return middleware.Conflict(auth.MessageFor(err))
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserDisabled),
		errors.Is(err, auth.ErrInvalidToken):
		return middleware.Unauthorized(auth.MessageFor(err))
	case errors.Is(err, auth.ErrTokenExpired):
		return middleware.BadRequest(auth.MessageFor(err))
	}
	return err
}

func tokenResponse(user *domain.User, tokens *domain.TokenPair) fiber.Map {
	resp := fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	}
	if user != nil {
		resp["user"] = user
	}
	return resp
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	user, tokens, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return authError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(tokenResponse(user, tokens))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	user, tokens, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return authError(err)
	}

	return c.Status(fiber.StatusOK).JSON(tokenResponse(user, tokens))
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	tokens, err := h.authService.RefreshToken(c.UserContext(), input.RefreshToken)
	if err != nil {
		return authError(err)
	}

	return c.Status(fiber.StatusOK).JSON(tokenResponse(nil, tokens))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.UserContext(), userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input domain.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody()
	}

	if err := h.authService.ResetPassword(c.UserContext(), input); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return middleware.BadRequest(auth.MessageFor(err))
		}
		return authError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password has been reset successfully",
	})
}

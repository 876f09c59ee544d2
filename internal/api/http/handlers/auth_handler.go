package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/opsboard/internal/api/dto"
	"github.com/spec-kit/opsboard/internal/service"
	"github.com/spec-kit/opsboard/pkg/util"
)

// AuthHandler exposes the auth resource.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST ?resource=auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return util.NewValidationError("Username and password are required")
	}

	user, token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": userResponse(user, token)})
}

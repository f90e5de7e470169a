package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rakhadian/hr-ai-platform/internal/models"
	"rakhadian/hr-ai-platform/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if errs := validateStruct(req); errs != nil {
		return validationErrorResponse(c, errs)
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	return successResponse(c, "Login successful", result)
}

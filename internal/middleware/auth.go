package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rakhadian/hr-ai-platform/internal/services"
)

// Locals keys populated by RequireAuth.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// RequireAuth validates the Bearer token and stores the caller's identity in
// the request locals.
func RequireAuth(auth services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromHeader(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required",
			})
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole guards a route for a single role. Must run after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(LocalRole) != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Access denied. Required role: " + role,
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's id, or uuid.Nil when the token
// carried no parseable id.
func UserID(c *fiber.Ctx) uuid.UUID {
	if s, ok := c.Locals(LocalUserID).(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			return id
		}
	}
	return uuid.Nil
}

// tokenFromHeader accepts both "Bearer <token>" and a bare token.
func tokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return ""
}

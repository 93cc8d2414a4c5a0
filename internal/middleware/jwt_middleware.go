package middleware

import (
	"log"
	"strings"

	"igames/internal/apperror"
	"igames/internal/models"
	"igames/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the fiber Locals key holding the authenticated *models.User.
const UserKey = "user"

// AuthRequired is a Fiber middleware that resolves the bearer token to a user.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperror.Unauthorized("Unauthorized")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return apperror.Unauthorized("Unauthorized")
		}

		user, err := authService.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			log.Printf("Bearer token rejected for %s %s: %v", c.Method(), c.Path(), err)
			return err
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user bound by AuthRequired, or nil outside a protected route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}

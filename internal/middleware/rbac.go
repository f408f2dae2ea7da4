package middleware

import (
	"github.com/kantinhub/kantin-api/internal/response"
	"github.com/gofiber/fiber/v2"
)

// RoleProtected gates a route on the requester's role, taken from the
// verified access token. Runs after JWTProtected; the decision is made
// before any handler touches storage.
func RoleProtected(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

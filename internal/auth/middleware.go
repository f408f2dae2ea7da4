package auth

import (
	"strings"

	"github.com/kantinhub/kantin-api/internal/response"
	"github.com/kantinhub/kantin-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected validates the bearer token: signature, expiry, and membership
// in the revocation set. On success it stores identity in locals for the
// handlers behind it.
func (h *Handler) JWTProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid token format")
		}

		claims, err := utils.ParseJWT(tokenParts[1])
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		if h.sessions.IsAccessRevoked(claims.ID) {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals("user_id", claims.Subject)
		c.Locals("nik", claims.NIK)
		c.Locals("role", claims.Role)
		c.Locals("jti", claims.ID)
		c.Locals("token_exp", claims.ExpiresAt.Time)
		return c.Next()
	}
}

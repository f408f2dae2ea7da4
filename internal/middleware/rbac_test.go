package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/kantinhub/kantin-api/internal/middleware"
	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// rbacApp wires RoleProtected behind a stub that copies the X-Test-Role
// header into the request locals, standing in for the JWT middleware.
func rbacApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-Test-Role"); role != "" {
			c.Locals("role", role)
		}
		return c.Next()
	})
	app.Get("/guarded", middleware.RoleProtected(allowed...), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRoleProtected(t *testing.T) {
	app := rbacApp(models.RoleAdministrator)

	t.Run("no role in context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/guarded", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("role not allowed", func(t *testing.T) {
		for _, role := range []string{models.RoleEmployee, models.RoleDapur, models.RoleDelivery} {
			req := httptest.NewRequest("GET", "/guarded", nil)
			req.Header.Set("X-Test-Role", role)
			resp, err := app.Test(req, -1)
			assert.NoError(t, err)
			assert.Equal(t, 403, resp.StatusCode, "role %s should be rejected", role)
		}
	})

	t.Run("allowed role passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("X-Test-Role", models.RoleAdministrator)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("multiple allowed roles", func(t *testing.T) {
		multi := rbacApp(models.RoleDapur, models.RoleDelivery)

		for role, want := range map[string]int{
			models.RoleDapur:    200,
			models.RoleDelivery: 200,
			models.RoleEmployee: 403,
		} {
			req := httptest.NewRequest("GET", "/guarded", nil)
			req.Header.Set("X-Test-Role", role)
			resp, err := multi.Test(req, -1)
			assert.NoError(t, err)
			assert.Equal(t, want, resp.StatusCode, "role %s", role)
		}
	})
}

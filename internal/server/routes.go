package server

import (
	"time"

	"github.com/kantinhub/kantin-api/internal/auth"
	"github.com/kantinhub/kantin-api/internal/masterdata"
	"github.com/kantinhub/kantin-api/internal/middleware"
	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupRoutes(app *fiber.App, authHandler *auth.Handler, userHandler *user.Handler, masterHandler *masterdata.Handler) {
	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Kantin API is running",
		})
	})

	api := app.Group("/api")

	// ==========================================
	// AUTH
	// ==========================================
	authGroup := api.Group("/auth")
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        50,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), authHandler.Login)
	authGroup.Post("/refresh", limiter.New(limiter.Config{
		Max:        50,
		Expiration: 1 * time.Minute,
	}), authHandler.Refresh)
	authGroup.Post("/logout", authHandler.JWTProtected(), authHandler.Logout)
	authGroup.Get("/me", authHandler.JWTProtected(), authHandler.Me)

	// ==========================================
	// USER MANAGEMENT (administrator only)
	// ==========================================
	userGroup := api.Group("/users")
	userGroup.Use(authHandler.JWTProtected())
	userGroup.Use(middleware.RoleProtected(models.RoleAdministrator))
	userGroup.Post("/", userHandler.Create)
	userGroup.Get("/", userHandler.List)
	userGroup.Get("/:id", userHandler.Get)
	userGroup.Patch("/:id/status", userHandler.UpdateStatus)
	userGroup.Patch("/:id/role", userHandler.UpdateRole)
	userGroup.Post("/:id/reset-password", userHandler.ResetPassword)
	userGroup.Patch("/:id/profile", userHandler.UpdateProfile)
	userGroup.Delete("/:id", userHandler.Delete)

	// ==========================================
	// MASTER DATA (any authenticated role)
	// ==========================================
	masterGroup := api.Group("/master-data")
	masterGroup.Use(authHandler.JWTProtected())
	masterGroup.Get("/departments", masterHandler.ListDepartments)
	masterGroup.Get("/shifts", masterHandler.ListShifts)
	masterGroup.Get("/locations", masterHandler.ListLocations)
}

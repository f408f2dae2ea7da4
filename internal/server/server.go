package server

import (
	"github.com/kantinhub/kantin-api/internal/auth"
	"github.com/kantinhub/kantin-api/internal/masterdata"
	"github.com/kantinhub/kantin-api/internal/session"
	"github.com/kantinhub/kantin-api/internal/user"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func New(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	sessions := session.NewRegistry(db)
	authHandler := auth.NewHandler(db, sessions)
	userHandler := user.NewHandler(db, sessions)
	masterHandler := masterdata.NewHandler(db)

	SetupRoutes(app, authHandler, userHandler, masterHandler)

	return app
}

package main

import (
	"log"
	"time"

	"github.com/kantinhub/kantin-api/internal/config"
	"github.com/kantinhub/kantin-api/internal/database"
	"github.com/kantinhub/kantin-api/internal/masterdata"
	"github.com/kantinhub/kantin-api/internal/server"
	"github.com/kantinhub/kantin-api/internal/session"
	"github.com/kantinhub/kantin-api/internal/user"
	"github.com/kantinhub/kantin-api/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.ValidateJWTSecret(); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== SEED DEFAULT DATA ==========
	if err := masterdata.Seed(db); err != nil {
		log.Println("⚠️  Failed to seed master data:", err)
	} else {
		log.Println("✅ Master data seeded")
	}

	if err := user.SeedAdminUser(db); err != nil {
		log.Println("⚠️  Failed to seed administrator:", err)
	}

	// ========== BACKGROUND JOBS ==========
	sessions := session.NewRegistry(db)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := sessions.PurgeExpired(); err != nil {
				log.Printf("⚠️  Session cleanup failed: %v", err)
			}
		}
	}()

	// ========== START SERVER ==========
	app := server.New(db)

	log.Printf("🚀 Kantin API starting on %s", cfg.ServerAddr)
	log.Printf("🔐 JWT Authentication: Enabled")

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}

package user

import (
	"log"
	"os"

	"github.com/kantinhub/kantin-api/internal/models"
	"gorm.io/gorm"
)

// SeedAdminUser creates the bootstrap administrator when no administrator
// exists yet, so a fresh deployment is reachable.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdministrator).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	_, err := CreateUser(db, CreateInput{
		NIK:      "ADM001",
		Username: "ADM001",
		FullName: "Default Administrator",
		Password: password,
		Role:     models.RoleAdministrator,
	})
	if err != nil {
		return err
	}

	log.Println("✅ Bootstrap administrator ADM001 created")
	return nil
}

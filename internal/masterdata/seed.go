package masterdata

import (
	"github.com/kantinhub/kantin-api/internal/models"
	"gorm.io/gorm"
)

// Seed inserts the default master data when missing. Safe to call on every
// startup.
func Seed(db *gorm.DB) error {
	departments := []string{"IT Department", "Human Resources", "Operations"}
	for _, name := range departments {
		var dept models.Department
		if err := db.Where("name = ?", name).First(&dept).Error; err != nil {
			if err := db.Create(&models.Department{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	shifts := []models.Shift{
		{Name: "Shift 1", StartTime: "07:00", EndTime: "15:00"},
		{Name: "Shift 2", StartTime: "15:00", EndTime: "23:00"},
		{Name: "Shift 3", StartTime: "23:00", EndTime: "07:00"},
	}
	for _, s := range shifts {
		var shift models.Shift
		if err := db.Where("name = ?", s.Name).First(&shift).Error; err != nil {
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}

	locations := []string{"Kantin Utama", "Kantin Gedung B", "Pantry Lantai 3"}
	for _, name := range locations {
		var loc models.Location
		if err := db.Where("name = ?", name).First(&loc).Error; err != nil {
			if err := db.Create(&models.Location{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

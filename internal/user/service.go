package user

import (
	"errors"
	"strings"

	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/utils"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	ErrNIKExists      = errors.New("NIK already exists")
	ErrUsernameExists = errors.New("Username already exists")
)

// Free-text fields are stripped of any markup before they hit the store.
var sanitizer = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

type CreateInput struct {
	NIK          string
	Username     string
	FullName     string
	Password     string
	Role         string
	Email        string
	Phone        string
	DepartmentID *uint
}

// CreateUser inserts a new account. The uniqueness checks and the insert run
// in one transaction, and the unique indexes on nik/username back-stop the
// race two concurrent creates could otherwise win together: at most one
// commit succeeds, the loser surfaces as a conflict.
func CreateUser(db *gorm.DB, in CreateInput) (*models.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		NIK:          sanitize(in.NIK),
		Username:     sanitize(in.Username),
		FullName:     sanitize(in.FullName),
		PasswordHash: hash,
		Role:         in.Role,
		Status:       models.StatusActive,
		Email:        sanitize(in.Email),
		Phone:        sanitize(in.Phone),
		DepartmentID: in.DepartmentID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("nik = ?", u.NIK).First(&existing).Error; err == nil {
			return ErrNIKExists
		}
		if err := tx.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			return ErrUsernameExists
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, err
	}

	return u, nil
}

// IsUniqueViolation recognizes a duplicate-key error from the store, for
// races that slip past the in-transaction checks.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

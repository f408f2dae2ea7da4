package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values accepted by the service. The set is closed: anything else is
// rejected at the boundary with a 400.
const (
	RoleAdministrator = "administrator"
	RoleEmployee      = "employee"
	RoleDapur         = "dapur"
	RoleDelivery      = "delivery"
)

// Status values for a user account. Only ACTIVE users can authenticate.
const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleEmployee, RoleDapur, RoleDelivery:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	NIK          string         `gorm:"uniqueIndex;size:50;not null" json:"nik"`
	Username     string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;not null" json:"role"`
	Status       string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	FullName     string         `gorm:"size:150" json:"fullName"`
	Email        string         `gorm:"size:100" json:"email"`
	Phone        string         `gorm:"size:30" json:"phone"`
	DepartmentID *uint          `json:"departmentId"`
	Department   *Department    `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

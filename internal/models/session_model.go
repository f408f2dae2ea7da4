package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken is one outstanding session. Only the sha256 hash of the token
// is stored; the raw value goes to the client exactly once.
type RefreshToken struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"index;size:36" json:"user_id"`
	TokenHash string         `gorm:"uniqueIndex;size:64" json:"-"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	Revoked   bool           `gorm:"default:false" json:"revoked"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RevokedToken is an access-token JTI that was invalidated before its natural
// expiry (logout). Rows become dead weight once ExpiresAt passes and are
// purged by the background cleaner.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"uniqueIndex;size:36;not null"`
	UserID    string    `gorm:"index;size:36"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

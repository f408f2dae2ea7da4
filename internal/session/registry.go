package session

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/utils"
	"gorm.io/gorm"
)

// ErrInvalidToken covers every refresh failure: unknown, expired, revoked or
// already rotated away. Callers must not expose which one it was.
var ErrInvalidToken = errors.New("invalid or expired refresh token")

// Registry tracks outstanding refresh tokens and revoked access-token JTIs.
// All state lives in the database, so it is safe across concurrent requests
// and across instances sharing the same store.
type Registry struct {
	db         *gorm.DB
	refreshTTL time.Duration
}

func NewRegistry(db *gorm.DB) *Registry {
	ttl := 7 * 24 * time.Hour
	if v := os.Getenv("REFRESH_TOKEN_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	return &Registry{db: db, refreshTTL: ttl}
}

// Issue creates a new refresh session for the user and returns the raw token.
// Only its hash is stored.
func (r *Registry) Issue(userID string) (string, error) {
	return r.issue(r.db, userID)
}

func (r *Registry) issue(tx *gorm.DB, userID string) (string, error) {
	raw := utils.RandomString(64)

	rt := models.RefreshToken{
		UserID:    userID,
		TokenHash: utils.HashToken(raw),
		ExpiresAt: time.Now().Add(r.refreshTTL),
		Revoked:   false,
	}

	if err := tx.Create(&rt).Error; err != nil {
		return "", err
	}

	return raw, nil
}

// Rotate consumes the presented refresh token and issues a replacement.
// The consume step is a single conditional UPDATE: of any number of
// concurrent calls presenting the same token, exactly one sees
// RowsAffected == 1 and proceeds. Consume and issue run in one transaction,
// so either the old token is replaced by the new one or nothing changes.
func (r *Registry) Rotate(raw string) (string, string, error) {
	hash := utils.HashToken(raw)

	var rt models.RefreshToken
	if err := r.db.Where("token_hash = ?", hash).First(&rt).Error; err != nil {
		return "", "", ErrInvalidToken
	}

	var newRaw string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked = ? AND expires_at > ?", rt.ID, false, time.Now()).
			Update("revoked", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return ErrInvalidToken
		}

		var err error
		newRaw, err = r.issue(tx, rt.UserID)
		return err
	})
	if err != nil {
		return "", "", err
	}

	return rt.UserID, newRaw, nil
}

// RevokeAllForUser kills every outstanding refresh session of the user.
// Used on logout, password reset and account deletion.
func (r *Registry) RevokeAllForUser(userID string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

// RevokeAccess adds an access-token jti to the revocation set. The row
// carries the token's own expiry so it can be purged once the token would
// have died anyway.
func (r *Registry) RevokeAccess(jti, userID string, expiresAt time.Time) error {
	rec := models.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := r.db.Create(&rec).Error; err != nil {
		// Revoking the same jti twice is a no-op, not a failure.
		var existing models.RevokedToken
		if r.db.Where("jti = ?", jti).First(&existing).Error == nil {
			return nil
		}
		return err
	}
	return nil
}

func (r *Registry) IsAccessRevoked(jti string) bool {
	var count int64
	r.db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count)
	return count > 0
}

// PurgeExpired drops refresh tokens and revocation entries that are past
// their expiry. Called from the hourly background cleaner.
func (r *Registry) PurgeExpired() (int64, error) {
	now := time.Now()

	result := r.db.Unscoped().Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	purged := result.RowsAffected

	result = r.db.Where("expires_at < ?", now).Delete(&models.RevokedToken{})
	if result.Error != nil {
		return purged, result.Error
	}
	purged += result.RowsAffected

	if purged > 0 {
		log.Printf("🧹 Cleaned up %d expired session records", purged)
	}
	return purged, nil
}

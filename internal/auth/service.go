package auth

import (
	"errors"

	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is the only error Authenticate returns for a failed
// attempt, whatever the internal cause. Callers map it to a 401 with a
// constant message.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash absorbs a bcrypt comparison when the NIK is unknown or the
// account cannot log in, so a failed attempt costs the same either way.
var dummyHash []byte

func init() {
	dummyHash, _ = bcrypt.GenerateFromPassword([]byte(utils.RandomString(32)), bcrypt.DefaultCost)
}

// Authenticate verifies a NIK/password pair. Empty inputs, unknown NIK,
// non-ACTIVE accounts and wrong passwords all take the same path and return
// the same error.
func Authenticate(db *gorm.DB, nik, password string) (*models.User, string, error) {
	var user models.User
	err := db.Where("nik = ?", nik).First(&user).Error

	if err != nil || user.Status != models.StatusActive {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		if err != nil {
			return nil, "unknown nik", ErrInvalidCredentials
		}
		return nil, "account not active", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "wrong password", ErrInvalidCredentials
	}

	return &user, "", nil
}

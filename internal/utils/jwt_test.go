package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseJWT(t *testing.T) {
	signed, jti, err := GenerateJWT("user-1", "EMP001", "employee")
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEmpty(t, jti)

	claims, err := ParseJWT(signed)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "EMP001", claims.NIK)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestGenerateJWTFreshJTI(t *testing.T) {
	a, jtiA, err := GenerateJWT("user-1", "EMP001", "employee")
	assert.NoError(t, err)
	b, jtiB, err := GenerateJWT("user-1", "EMP001", "employee")
	assert.NoError(t, err)

	assert.NotEqual(t, jtiA, jtiB)
	assert.NotEqual(t, a, b)
}

func TestParseJWTRejectsTampering(t *testing.T) {
	signed, _, err := GenerateJWT("user-1", "EMP001", "employee")
	assert.NoError(t, err)

	t.Run("flipped signature", func(t *testing.T) {
		parts := strings.Split(signed, ".")
		assert.Len(t, parts, 3)

		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err := ParseJWT(tampered)
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		for _, token := range []string{"", "abc", "a.b.c"} {
			_, err := ParseJWT(token)
			assert.Error(t, err)
		}
	})
}

func TestParseJWTRequiresExpiry(t *testing.T) {
	// A correctly signed token with no exp claim must not pass validation.
	claims := Claims{
		NIK:  "EMP001",
		Role: "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-1",
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey)
	assert.NoError(t, err)

	_, err = ParseJWT(signed)
	assert.Error(t, err)
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw := GenerateTempPassword()
		assert.True(t, strings.HasPrefix(pw, "TEMP-"))
		assert.Len(t, pw, len("TEMP-")+6)
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 1, "temp passwords should not repeat constantly")
}

func TestHashToken(t *testing.T) {
	h := HashToken("some-token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("some-token"))
	assert.NotEqual(t, h, HashToken("other-token"))
}

package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/kantinhub/kantin-api/internal/database"
	"github.com/kantinhub/kantin-api/internal/masterdata"
	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/server"
	"github.com/kantinhub/kantin-api/internal/user"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.Department{},
		&models.Shift{},
		&models.Location{},
		&models.User{},
		&models.RefreshToken{},
		&models.RevokedToken{},
		&models.AuditLog{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	err := masterdata.Seed(db)
	assert.NoError(t, err, "Failed to seed master data")

	return server.New(db)
}

func CreateTestUser(t *testing.T, db *gorm.DB, nik, password, role string) *models.User {
	u, err := user.CreateUser(db, user.CreateInput{
		NIK:      nik,
		Username: nik,
		FullName: "Test User " + nik,
		Password: password,
		Role:     role,
	})
	assert.NoError(t, err, "Failed to create test user")
	return u
}

// LoginAs logs in through the HTTP surface and returns the issued token pair.
func LoginAs(t *testing.T, app *fiber.App, nik, password string) (string, string) {
	resp, err := MakeRequest(app, "POST", "/api/auth/login", map[string]interface{}{
		"nik":      nik,
		"password": password,
	}, "")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code, "login failed for %s", nik)

	var result map[string]interface{}
	ParseResponse(t, resp, &result)

	access, _ := result["accessToken"].(string)
	refresh, _ := result["refreshToken"].(string)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	return access, refresh
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

package auth_test

import (
	"testing"

	"github.com/kantinhub/kantin-api/internal/database"
	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	testutils.CreateTestUser(t, database.DB, "EMP010", "password123", models.RoleEmployee)

	t.Run("Success - Valid credentials", func(t *testing.T) {
		body := map[string]interface{}{
			"nik":      "EMP010",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result map[string]interface{}
		testutils.ParseResponse(t, resp, &result)

		assert.NotEmpty(t, result["accessToken"])
		assert.NotEmpty(t, result["refreshToken"])

		user, ok := result["user"].(map[string]interface{})
		assert.True(t, ok, "user object missing in response")
		assert.NotEmpty(t, user["id"])
		assert.Equal(t, "EMP010", user["username"])
		assert.Contains(t, []string{
			models.RoleAdministrator, models.RoleEmployee, models.RoleDapur, models.RoleDelivery,
		}, user["role"])
		assert.NotEmpty(t, user["createdAt"])
		assert.NotContains(t, user, "passwordHash")
	})

	t.Run("Success - Username accepted as nik alias", func(t *testing.T) {
		body := map[string]interface{}{
			"username": "EMP010",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Error - Invalid credentials always 401", func(t *testing.T) {
		invalid := []map[string]interface{}{
			{"nik": "EMP010", "password": "wrongpassword"},
			{"nik": "NOPE999", "password": "password123"},
			{"nik": "", "password": "password123"},
			{"nik": "EMP010", "password": ""},
			{"nik": "", "password": ""},
		}

		for _, body := range invalid {
			resp, err := testutils.MakeRequest(app, "POST", "/api/auth/login", body, "")
			assert.NoError(t, err)
			assert.Equal(t, 401, resp.Code, "expected 401 for %v", body)

			// The body must not leak which part was wrong.
			assert.NotContains(t, resp.Body.String(), "nik")
			assert.NotContains(t, resp.Body.String(), "password")
		}
	})

	t.Run("Error - Inactive user cannot login", func(t *testing.T) {
		u := testutils.CreateTestUser(t, database.DB, "EMP011", "password123", models.RoleEmployee)
		database.DB.Model(u).Update("status", models.StatusSuspended)

		body := map[string]interface{}{
			"nik":      "EMP011",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}

func TestRefreshHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	testutils.CreateTestUser(t, database.DB, "EMP020", "password123", models.RoleEmployee)
	access, refresh := testutils.LoginAs(t, app, "EMP020", "password123")

	var rotatedRefresh string

	t.Run("Success - Rotation issues a fresh pair", func(t *testing.T) {
		body := map[string]interface{}{"refreshToken": refresh}

		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result map[string]interface{}
		testutils.ParseResponse(t, resp, &result)

		newAccess, _ := result["accessToken"].(string)
		newRefresh, _ := result["refreshToken"].(string)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.NotEqual(t, access, newAccess)
		assert.NotEqual(t, refresh, newRefresh)

		rotatedRefresh = newRefresh
	})

	t.Run("Error - Reusing a rotated token fails", func(t *testing.T) {
		body := map[string]interface{}{"refreshToken": refresh}

		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Success - The replacement token still works", func(t *testing.T) {
		body := map[string]interface{}{"refreshToken": rotatedRefresh}

		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Error - Unknown or empty token", func(t *testing.T) {
		for _, token := range []string{"not-a-real-token", ""} {
			body := map[string]interface{}{"refreshToken": token}

			resp, err := testutils.MakeRequest(app, "POST", "/api/auth/refresh", body, "")
			assert.NoError(t, err)
			assert.Equal(t, 401, resp.Code)
		}
	})
}

func TestLogoutHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	testutils.CreateTestUser(t, database.DB, "ADM030", "admin123", models.RoleAdministrator)
	access, refresh := testutils.LoginAs(t, app, "ADM030", "admin123")

	t.Run("Token works before logout", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/auth/me", nil, access)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Success - Logout", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/logout", nil, access)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
	})

	t.Run("Error - Revoked access token rejected everywhere", func(t *testing.T) {
		for _, url := range []string{"/api/auth/me", "/api/users", "/api/master-data/departments"} {
			resp, err := testutils.MakeRequest(app, "GET", url, nil, access)
			assert.NoError(t, err)
			assert.Equal(t, 401, resp.Code, "expected 401 on %s after logout", url)
		}
	})

	t.Run("Error - Refresh sessions died with the logout", func(t *testing.T) {
		body := map[string]interface{}{"refreshToken": refresh}

		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/refresh", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Error - Logout without token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/auth/logout", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}

func TestMeHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	testutils.CreateTestUser(t, database.DB, "EMP040", "password123", models.RoleDapur)
	access, _ := testutils.LoginAs(t, app, "EMP040", "password123")

	t.Run("Success - Full profile", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/auth/me", nil, access)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result map[string]interface{}
		testutils.ParseResponse(t, resp, &result)

		assert.NotEmpty(t, result["id"])
		assert.Equal(t, "EMP040", result["nik"])
		assert.Equal(t, "EMP040", result["username"])
		assert.Equal(t, models.RoleDapur, result["role"])
		assert.Equal(t, models.StatusActive, result["status"])
		assert.NotEmpty(t, result["createdAt"])
		assert.NotContains(t, result, "passwordHash")
	})

	t.Run("Error - Missing or malformed token", func(t *testing.T) {
		for _, token := range []string{"", "garbage", "still.not.ajwt"} {
			resp, err := testutils.MakeRequest(app, "GET", "/api/auth/me", nil, token)
			assert.NoError(t, err)
			assert.Equal(t, 401, resp.Code)
		}
	})
}

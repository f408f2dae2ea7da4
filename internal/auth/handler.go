package auth

import (
	"time"

	"github.com/kantinhub/kantin-api/internal/audit"
	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/response"
	"github.com/kantinhub/kantin-api/internal/session"
	"github.com/kantinhub/kantin-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handler struct {
	db       *gorm.DB
	sessions *session.Registry
}

func NewHandler(db *gorm.DB, sessions *session.Registry) *Handler {
	return &Handler{db: db, sessions: sessions}
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body struct {
		NIK      string `json:"nik"`
		Username string `json:"username"` // accepted as an alias for nik
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.Unauthorized(c, "Invalid credentials")
	}

	nik := body.NIK
	if nik == "" {
		nik = body.Username
	}

	user, reason, err := Authenticate(h.db, nik, body.Password)
	if err != nil {
		audit.LogLoginFailure(h.db, nik, reason)
		return response.Unauthorized(c, "Invalid credentials")
	}

	accessToken, _, err := utils.GenerateJWT(user.ID, user.NIK, user.Role)
	if err != nil {
		return response.InternalError(c, "Failed to issue token")
	}

	refreshToken, err := h.sessions.Issue(user.ID)
	if err != nil {
		return response.InternalError(c, "Failed to issue token")
	}

	audit.LogLoginSuccess(h.db, user.ID, user.NIK)

	return c.JSON(fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

func (h *Handler) Refresh(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}

	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return response.Unauthorized(c, "Invalid or expired refresh token")
	}

	userID, newRefreshToken, err := h.sessions.Rotate(body.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid or expired refresh token")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil || user.Status != models.StatusActive {
		return response.Unauthorized(c, "User no longer valid or inactive")
	}

	accessToken, _, err := utils.GenerateJWT(user.ID, user.NIK, user.Role)
	if err != nil {
		return response.InternalError(c, "Failed to issue token")
	}

	audit.Log(h.db, user.ID, models.AuditTokenRefreshed, nil)

	return c.JSON(fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": newRefreshToken,
	})
}

// Logout revokes the presented access token and every refresh session of the
// user. The same bearer token is rejected on any protected route afterwards.
func (h *Handler) Logout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	jti := c.Locals("jti").(string)
	exp := c.Locals("token_exp").(time.Time)

	if err := h.sessions.RevokeAccess(jti, userID, exp); err != nil {
		return response.InternalError(c, "Failed to revoke token")
	}
	if err := h.sessions.RevokeAllForUser(userID); err != nil {
		return response.InternalError(c, "Failed to revoke sessions")
	}

	audit.Log(h.db, userID, models.AuditLogout, nil)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var user models.User
	if err := h.db.Preload("Department").First(&user, "id = ?", userID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}

	return c.JSON(&user)
}

package user

import (
	"encoding/json"
	"errors"

	"github.com/kantinhub/kantin-api/internal/audit"
	"github.com/kantinhub/kantin-api/internal/models"
	"github.com/kantinhub/kantin-api/internal/response"
	"github.com/kantinhub/kantin-api/internal/session"
	"github.com/kantinhub/kantin-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	db       *gorm.DB
	sessions *session.Registry
}

func NewHandler(db *gorm.DB, sessions *session.Registry) *Handler {
	return &Handler{db: db, sessions: sessions}
}

func (h *Handler) actorID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// findUser resolves the :id parameter. Malformed ids are a 400, well-formed
// unknown ids a 404; neither must ever look like a hit. On failure the
// response has already been written and nil is returned, so callers must
// stop without touching the user.
func (h *Handler) findUser(c *fiber.Ctx) *models.User {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = response.BadRequest(c, "Invalid user ID")
		return nil
	}

	var user models.User
	if err := h.db.Preload("Department").First(&user, "id = ?", id).Error; err != nil {
		_ = response.NotFound(c, "User")
		return nil
	}
	return &user
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body struct {
		NIK          string `json:"nik"`
		Username     string `json:"username"`
		FullName     string `json:"fullName"`
		NamaLengkap  string `json:"namaLengkap"` // accepted as an alias for fullName
		Password     string `json:"password"`
		Role         string `json:"role"`
		RoleAccess   string `json:"roleAccess"` // accepted as an alias for role
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		DepartmentID *uint  `json:"departmentId"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	role := body.Role
	if role == "" {
		role = body.RoleAccess
	}
	fullName := body.FullName
	if fullName == "" {
		fullName = body.NamaLengkap
	}
	username := body.Username
	if username == "" {
		username = body.NIK
	}

	if body.NIK == "" {
		return response.BadRequest(c, "nik is required")
	}
	if len(body.Password) < 6 {
		return response.BadRequest(c, "password must be at least 6 characters")
	}
	if !models.ValidRole(role) {
		return response.BadRequest(c, "role must be one of administrator, employee, dapur, delivery")
	}

	if body.DepartmentID != nil {
		var dept models.Department
		if err := h.db.First(&dept, *body.DepartmentID).Error; err != nil {
			return response.BadRequest(c, "Department not found")
		}
	}

	created, err := CreateUser(h.db, CreateInput{
		NIK:          body.NIK,
		Username:     username,
		FullName:     fullName,
		Password:     body.Password,
		Role:         role,
		Email:        body.Email,
		Phone:        body.Phone,
		DepartmentID: body.DepartmentID,
	})
	if err != nil {
		if errors.Is(err, ErrNIKExists) || errors.Is(err, ErrUsernameExists) || IsUniqueViolation(err) {
			msg := "NIK already exists"
			if errors.Is(err, ErrUsernameExists) {
				msg = "Username already exists"
			}
			return response.Conflict(c, msg)
		}
		return response.InternalError(c, "Failed to create user")
	}

	audit.Log(h.db, h.actorID(c), models.AuditUserCreated, map[string]interface{}{
		"nik":  created.NIK,
		"role": created.Role,
	})

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) List(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.Preload("Department").Order("created_at, id").Find(&users).Error; err != nil {
		return response.InternalError(c, "Failed to fetch users")
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	user := h.findUser(c)
	if user == nil {
		return nil
	}

	return c.JSON(user)
}

func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !models.ValidStatus(body.Status) {
		return response.BadRequest(c, "status must be one of ACTIVE, INACTIVE, SUSPENDED")
	}

	user := h.findUser(c)
	if user == nil {
		return nil
	}

	if err := h.db.Model(user).Update("status", body.Status).Error; err != nil {
		return response.InternalError(c, "Failed to update status")
	}

	audit.Log(h.db, h.actorID(c), models.AuditUserStatusChanged, map[string]interface{}{
		"nik":    user.NIK,
		"status": body.Status,
	})

	return c.JSON(user)
}

func (h *Handler) UpdateRole(c *fiber.Ctx) error {
	var body struct {
		Role       string `json:"role"`
		RoleAccess string `json:"roleAccess"` // accepted as an alias for role
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	role := body.Role
	if role == "" {
		role = body.RoleAccess
	}
	if !models.ValidRole(role) {
		return response.BadRequest(c, "role must be one of administrator, employee, dapur, delivery")
	}

	user := h.findUser(c)
	if user == nil {
		return nil
	}

	if err := h.db.Model(user).Update("role", role).Error; err != nil {
		return response.InternalError(c, "Failed to update role")
	}

	audit.Log(h.db, h.actorID(c), models.AuditUserRoleChanged, map[string]interface{}{
		"nik":  user.NIK,
		"role": role,
	})

	return c.JSON(user)
}

// ResetPassword rehashes either the supplied password or a generated
// temporary one, and kills the target's refresh sessions so the old
// credential cannot keep a session alive.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		NewPassword string `json:"newPassword"`
	}
	// Body is optional; an empty or missing body means "generate one".
	_ = c.BodyParser(&body)

	user := h.findUser(c)
	if user == nil {
		return nil
	}

	generated := false
	password := body.NewPassword
	if password == "" {
		password = utils.GenerateTempPassword()
		generated = true
	} else if len(password) < 6 {
		return response.BadRequest(c, "password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}

	if err := h.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return response.InternalError(c, "Failed to reset password")
	}

	if err := h.sessions.RevokeAllForUser(user.ID); err != nil {
		return response.InternalError(c, "Failed to revoke sessions")
	}

	audit.Log(h.db, h.actorID(c), models.AuditPasswordReset, map[string]interface{}{
		"nik": user.NIK,
	})

	resp := fiber.Map{"message": "Password reset successfully"}
	if generated {
		resp["tempPassword"] = password
	}
	return c.JSON(resp)
}

// UpdateProfile applies a partial update and echoes back exactly the fields
// that changed.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var body struct {
		Username *string `json:"username"`
		FullName *string `json:"fullName"`
		Fullname *string `json:"fullname"` // accepted as an alias for fullName
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		// Raw so that an explicit null (clear the assignment) can be told
		// apart from an absent key.
		DepartmentID json.RawMessage `json:"departmentId"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user := h.findUser(c)
	if user == nil {
		return nil
	}

	fullName := body.FullName
	if fullName == nil {
		fullName = body.Fullname
	}

	changed := fiber.Map{}
	updates := map[string]interface{}{}

	if body.Username != nil && sanitize(*body.Username) != user.Username {
		updates["username"] = sanitize(*body.Username)
		changed["username"] = updates["username"]
	}
	if fullName != nil && sanitize(*fullName) != user.FullName {
		updates["full_name"] = sanitize(*fullName)
		changed["fullName"] = updates["full_name"]
	}
	if body.Email != nil && sanitize(*body.Email) != user.Email {
		updates["email"] = sanitize(*body.Email)
		changed["email"] = updates["email"]
	}
	if body.Phone != nil && sanitize(*body.Phone) != user.Phone {
		updates["phone"] = sanitize(*body.Phone)
		changed["phone"] = updates["phone"]
	}
	if len(body.DepartmentID) > 0 {
		if string(body.DepartmentID) == "null" {
			updates["department_id"] = nil
			changed["departmentId"] = nil
		} else {
			var deptID uint
			if err := json.Unmarshal(body.DepartmentID, &deptID); err != nil {
				return response.BadRequest(c, "Invalid department id")
			}
			var dept models.Department
			if err := h.db.First(&dept, deptID).Error; err != nil {
				return response.BadRequest(c, "Department not found")
			}
			updates["department_id"] = deptID
			changed["departmentId"] = deptID
		}
	}

	if len(updates) > 0 {
		err := h.db.Transaction(func(tx *gorm.DB) error {
			if newUsername, ok := updates["username"].(string); ok {
				var existing models.User
				if err := tx.Where("username = ? AND id <> ?", newUsername, user.ID).First(&existing).Error; err == nil {
					return ErrUsernameExists
				}
			}
			return tx.Model(user).Updates(updates).Error
		})
		if err != nil {
			if errors.Is(err, ErrUsernameExists) || IsUniqueViolation(err) {
				return response.Conflict(c, "Username already exists")
			}
			return response.InternalError(c, "Failed to update profile")
		}
	}

	audit.Log(h.db, h.actorID(c), models.AuditUserProfileUpdated, map[string]interface{}{
		"nik":     user.NIK,
		"changed": changed,
	})

	changed["id"] = user.ID
	return c.JSON(changed)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	user := h.findUser(c)
	if user == nil {
		return nil
	}

	if user.ID == h.actorID(c) {
		return response.BadRequest(c, "Cannot delete your own account")
	}

	if err := h.db.Delete(user).Error; err != nil {
		return response.InternalError(c, "Failed to delete user")
	}
	if err := h.sessions.RevokeAllForUser(user.ID); err != nil {
		return response.InternalError(c, "Failed to revoke sessions")
	}

	audit.Log(h.db, h.actorID(c), models.AuditUserDeleted, map[string]interface{}{
		"nik": user.NIK,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

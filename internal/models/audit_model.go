package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions recorded by the service.
const (
	AuditLoginSuccess       = "LOGIN_SUCCESS"
	AuditLoginFailure       = "LOGIN_FAILURE"
	AuditTokenRefreshed     = "TOKEN_REFRESHED"
	AuditLogout             = "LOGOUT"
	AuditUserCreated        = "USER_CREATED"
	AuditUserStatusChanged  = "USER_STATUS_CHANGED"
	AuditUserRoleChanged    = "USER_ROLE_CHANGED"
	AuditPasswordReset      = "PASSWORD_RESET"
	AuditUserProfileUpdated = "USER_PROFILE_UPDATED"
	AuditUserDeleted        = "USER_DELETED"
)

type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ActorID   string         `gorm:"index;size:36" json:"actorId"`
	Action    string         `gorm:"index;size:50;not null" json:"action"`
	Detail    datatypes.JSON `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

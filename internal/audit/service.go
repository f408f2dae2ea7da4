package audit

import (
	"encoding/json"
	"log"

	"github.com/kantinhub/kantin-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Log writes one audit entry. Audit failures are logged and swallowed; they
// must never fail the request that triggered them.
func Log(db *gorm.DB, actorID, action string, detail map[string]interface{}) {
	var payload datatypes.JSON
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			log.Printf("audit: failed to marshal detail for %s: %v", action, err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	entry := models.AuditLog{
		ActorID: actorID,
		Action:  action,
		Detail:  payload,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
	}
}

func LogLoginSuccess(db *gorm.DB, userID, nik string) {
	Log(db, userID, models.AuditLoginSuccess, map[string]interface{}{"nik": nik})
}

// LogLoginFailure records why a login was rejected. The reason stays
// internal; the HTTP response never carries it.
func LogLoginFailure(db *gorm.DB, nik, reason string) {
	Log(db, "", models.AuditLoginFailure, map[string]interface{}{
		"nik":    nik,
		"reason": reason,
	})
}

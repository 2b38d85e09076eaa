package models

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditActionCreate         AuditAction = "CREATE"
	AuditActionUpdate         AuditAction = "UPDATE"
	AuditActionDelete         AuditAction = "DELETE"
	AuditActionReplace        AuditAction = "REPLACE"
	AuditActionReplaceMulti   AuditAction = "REPLACE_MULTI"
	AuditActionReplacePartial AuditAction = "REPLACE_PARTIAL"
	AuditActionAdd            AuditAction = "ADD"
)

// AuditLog is the append-only trail. Every mutating command writes exactly
// one entry; Details carries a free-form JSON payload describing the change.
type AuditLog struct {
	ID         int         `gorm:"primary_key" json:"id"`
	Action     AuditAction `gorm:"type:enum('CREATE','UPDATE','DELETE','REPLACE','REPLACE_MULTI','REPLACE_PARTIAL','ADD');not null" json:"action"`
	EntityType string      `gorm:"size:50;not null;index" json:"entity_type"`
	EntityId   int         `gorm:"not null;index" json:"entity_id"`
	UserId     int         `gorm:"default:null" json:"user_id"`
	Details    string      `gorm:"type:text;default:null" json:"details"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// NewAuditEntry builds an entry with the details payload serialized to JSON.
// Marshal failures degrade to an empty payload rather than blocking the
// mutation the entry describes.
func NewAuditEntry(action AuditAction, entityType string, entityId int, userId int, details interface{}) AuditLog {
	entry := AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityId:   entityId,
		UserId:     userId,
	}
	if details != nil {
		if payload, err := json.Marshal(details); err == nil {
			entry.Details = string(payload)
		}
	}
	return entry
}

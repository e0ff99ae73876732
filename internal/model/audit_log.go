// internal/model/audit_log.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AuditLog records permission denials, destructive operations and exports.
type AuditLog struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Timestamp    time.Time `json:"timestamp" gorm:"default:CURRENT_TIMESTAMP"`
	ActionType   string    `json:"action_type"`
	ActorID      string    `json:"actor_id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Permission   string    `json:"permission"`
	Reason       string    `json:"reason"`
	Context      JSONMap   `json:"context" gorm:"type:jsonb"`
	RequestID    string    `json:"request_id"`
	CreatedAt    time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}

// Constants for AuditLog action types
const (
	ActionPermissionDenied = "permission_denied"
	ActionEntityDelete     = "entity_delete"
	ActionMembershipAdd    = "membership_add"
	ActionMembershipRemove = "membership_remove"
	ActionGrantChange      = "grant_change"
	ActionDataExport       = "data_export"
)

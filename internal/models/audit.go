// internal/models/audit.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one row of the append-only inquiry audit ledger. Entries are
// never updated or deleted once written.
type AuditEntry struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	InquiryID uuid.UUID   `json:"inquiry_id" gorm:"type:uuid;not null;index"`
	Action    AuditAction `json:"action" gorm:"type:varchar(32);not null;index"`
	ActorID   string      `json:"actor_id" gorm:"size:64;not null"`
	ActorName string      `json:"actor_name" gorm:"size:255;not null"`
	Timestamp time.Time   `json:"timestamp" gorm:"not null;index"`
	Details   string      `json:"details" gorm:"type:text"`

	// Seq breaks timestamp ties by insertion order.
	Seq       int64     `json:"-" gorm:"autoIncrement;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type InquiryStatus string

const (
	StatusPending            InquiryStatus = "Pending"
	StatusQuotationSubmitted InquiryStatus = "Quotation Submitted"
	StatusActive             InquiryStatus = "Active"
	StatusConfirmed          InquiryStatus = "Confirmed"
	StatusRejected           InquiryStatus = "Rejected"
)

// AllStatuses lists every status an inquiry can hold, in lifecycle order.
var AllStatuses = []InquiryStatus{
	StatusPending,
	StatusQuotationSubmitted,
	StatusActive,
	StatusConfirmed,
	StatusRejected,
}

func (s InquiryStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s InquiryStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

type AuditAction string

const (
	ActionCreated       AuditAction = "Created"
	ActionUpdated       AuditAction = "Updated"
	ActionStatusChanged AuditAction = "Status Changed"
	ActionAssigned      AuditAction = "Assigned"
)

var AllAuditActions = []AuditAction{
	ActionCreated,
	ActionUpdated,
	ActionStatusChanged,
	ActionAssigned,
}

func (a AuditAction) Valid() bool {
	for _, known := range AllAuditActions {
		if a == known {
			return true
		}
	}
	return false
}

// Canonical inquiry categories. Free-form tags from clients are normalized
// against this set by the engine before they reach an Inquiry.
const (
	CategoryBonded        = "Bonded"
	CategoryProvisions    = "Provisions"
	CategoryDeckEngine    = "Deck/Engine"
	CategoryMiscellaneous = "Miscellaneous"
)

var CanonicalCategories = []string{
	CategoryBonded,
	CategoryProvisions,
	CategoryDeckEngine,
	CategoryMiscellaneous,
}

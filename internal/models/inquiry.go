// internal/models/inquiry.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Inquiry struct {
	BaseModel
	ReferenceNumber   string         `json:"reference_number" gorm:"size:32;not null;uniqueIndex"`
	VesselName        string         `json:"vessel_name" gorm:"size:255;not null;index"`
	Agent             string         `json:"agent" gorm:"size:255;not null"`
	Port              string         `json:"port" gorm:"size:255;not null"`
	ETA               time.Time      `json:"eta" gorm:"not null"`
	Categories        pq.StringArray `json:"categories" gorm:"type:text[];not null"`
	Status            InquiryStatus  `json:"status" gorm:"type:varchar(32);default:'Pending';index"`
	KeyPICUserID      string         `json:"key_pic_usr_id" gorm:"size:64;not null;index"`
	KeyPICName        string         `json:"key_pic_name" gorm:"size:255;not null"`
	SubPICs           []InquiryPIC   `json:"sub_pics" gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
	ReceivedAt        time.Time      `json:"received_at" gorm:"not null"`
	QuotationDeadline *time.Time     `json:"quotation_deadline,omitempty"`
}

// InquiryPIC is one sub person-in-charge attached to an inquiry. The key PIC
// lives on the Inquiry itself; rows here are the ordered sub roster.
type InquiryPIC struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	InquiryID uuid.UUID `json:"inq_id" gorm:"type:uuid;not null;index"`
	UserID    string    `json:"pic_usr_id" gorm:"size:64;not null"`
	Name      string    `json:"pic_name" gorm:"size:255;not null"`
	Position  int       `json:"-" gorm:"not null"`
}

// internal/models/quotation.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type QuotationSource string

const (
	QuotationSourceUpload QuotationSource = "upload"
	QuotationSourceManual QuotationSource = "manual"
)

type Quotation struct {
	BaseModel
	InquiryID   *uuid.UUID          `json:"inquiry_id,omitempty" gorm:"type:uuid;index"`
	Source      QuotationSource     `json:"source" gorm:"type:varchar(16);not null"`
	GeneratedAt time.Time           `json:"generated_at" gorm:"not null"`
	LineItems   []QuotationLineItem `json:"line_items" gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
}

// QuotationLineItem is one row of a quotation, shaped exactly as the fixed
// target schema. Cell values are kept as given, so every field is text.
type QuotationLineItem struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	QuotationID uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Position    int       `json:"-" gorm:"not null;index"`

	ItemNo          string `json:"Item No" gorm:"type:text"`
	Item            string `json:"Item" gorm:"type:text"`
	CustomerRemarks string `json:"Customer Remarks" gorm:"type:text"`
	Quantity        string `json:"Quantity" gorm:"type:text"`
	Unit            string `json:"Unit" gorm:"type:text"`
	UnitRate        string `json:"Unit Rate" gorm:"type:text"`
	Total           string `json:"Total" gorm:"type:text"`
	InternalRemark  string `json:"Internal Remark" gorm:"type:text"`
}

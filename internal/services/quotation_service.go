// internal/services/quotation_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omsmarine/vims-backend/internal/database"
	"github.com/omsmarine/vims-backend/internal/engine"
	"github.com/omsmarine/vims-backend/internal/models"
	"github.com/omsmarine/vims-backend/internal/utils"
)

type QuotationService struct {
	db      *gorm.DB
	builder *engine.Builder
}

type GenerateQuotationRequest struct {
	InquiryID *uuid.UUID           `json:"inquiry_id,omitempty"`
	Mapping   engine.ColumnMapping `json:"mapping"`
	Headers   []string             `json:"headers"`
	Rows      [][]string           `json:"rows"`
}

type ManualQuotationRequest struct {
	InquiryID *uuid.UUID        `json:"inquiry_id,omitempty"`
	Entries   []engine.LineItem `json:"entries"`
}

func NewQuotationService(db *gorm.DB) *QuotationService {
	return &QuotationService{db: db, builder: engine.NewBuilder()}
}

// GenerateFromTable projects an uploaded table through the user's column
// mapping and persists the result as a new quotation. Regenerating never
// merges; each call produces a fresh line-item sequence.
func (s *QuotationService) GenerateFromTable(req *GenerateQuotationRequest) (*models.Quotation, error) {
	if err := s.checkInquiry(req.InquiryID); err != nil {
		return nil, err
	}

	generated := s.builder.FromMappedRows(req.InquiryID, req.Mapping.ProjectAll(req.Headers, req.Rows))
	return s.persist(generated, models.QuotationSourceUpload)
}

// GenerateManual persists user-typed entries as a new quotation.
func (s *QuotationService) GenerateManual(req *ManualQuotationRequest) (*models.Quotation, error) {
	if err := s.checkInquiry(req.InquiryID); err != nil {
		return nil, err
	}

	generated := s.builder.FromManualEntries(req.InquiryID, req.Entries)
	return s.persist(generated, models.QuotationSourceManual)
}

func (s *QuotationService) checkInquiry(inquiryID *uuid.UUID) error {
	if inquiryID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&models.Inquiry{}).Where("id = ?", *inquiryID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check inquiry: %w", err)
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *QuotationService) persist(generated *engine.Quotation, source models.QuotationSource) (*models.Quotation, error) {
	quotation := &models.Quotation{
		InquiryID:   generated.InquiryID,
		Source:      source,
		GeneratedAt: generated.GeneratedAt,
		LineItems:   toModelItems(uuid.Nil, generated.LineItems),
	}
	if err := s.db.Create(quotation).Error; err != nil {
		return nil, fmt.Errorf("failed to save quotation: %w", err)
	}
	return quotation, nil
}

func (s *QuotationService) Get(id uuid.UUID) (*models.Quotation, error) {
	var quotation models.Quotation
	err := s.db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&quotation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (s *QuotationService) List(params utils.PaginationParams, inquiryID *uuid.UUID) (utils.PaginationResult, error) {
	query := s.db.Model(&models.Quotation{})
	if inquiryID != nil {
		query = query.Where("inquiry_id = ?", *inquiryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.PaginationResult{}, fmt.Errorf("failed to count quotations: %w", err)
	}

	var quotations []models.Quotation
	err := utils.ApplyPagination(query.Order("generated_at DESC"), params).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&quotations).Error
	if err != nil {
		return utils.PaginationResult{}, fmt.Errorf("failed to load quotations: %w", err)
	}

	return utils.CreatePaginationResult(quotations, total, params), nil
}

func (s *QuotationService) AddLineItem(id uuid.UUID, item engine.LineItem) (*models.Quotation, error) {
	return s.mutate(id, func(q *engine.Quotation) error {
		q.AddLineItem(item)
		return nil
	})
}

func (s *QuotationService) UpdateLineItem(id uuid.UUID, index int, item engine.LineItem) (*models.Quotation, error) {
	return s.mutate(id, func(q *engine.Quotation) error {
		return q.UpdateLineItem(index, item)
	})
}

func (s *QuotationService) RemoveLineItem(id uuid.UUID, index int) (*models.Quotation, error) {
	return s.mutate(id, func(q *engine.Quotation) error {
		return q.RemoveLineItem(index)
	})
}

// mutate runs one positional edit through the engine and rewrites the stored
// line-item sequence to match. A failed edit changes nothing.
func (s *QuotationService) mutate(id uuid.UUID, edit func(*engine.Quotation) error) (*models.Quotation, error) {
	var result *models.Quotation
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var quotation models.Quotation
		err := tx.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).First(&quotation, "id = ?", id).Error
		if err != nil {
			return err
		}

		working := &engine.Quotation{
			InquiryID:   quotation.InquiryID,
			LineItems:   toEngineItems(quotation.LineItems),
			GeneratedAt: quotation.GeneratedAt,
		}
		if err := edit(working); err != nil {
			return err
		}

		if err := tx.Where("quotation_id = ?", id).Delete(&models.QuotationLineItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear line items: %w", err)
		}
		items := toModelItems(id, working.LineItems)
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to save line items: %w", err)
			}
		}
		quotation.LineItems = items
		result = &quotation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toEngineItems(items []models.QuotationLineItem) []engine.LineItem {
	out := make([]engine.LineItem, len(items))
	for i, item := range items {
		out[i] = engine.LineItem{
			ItemNo:          item.ItemNo,
			Item:            item.Item,
			CustomerRemarks: item.CustomerRemarks,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			UnitRate:        item.UnitRate,
			Total:           item.Total,
			InternalRemark:  item.InternalRemark,
		}
	}
	return out
}

func toModelItems(quotationID uuid.UUID, items []engine.LineItem) []models.QuotationLineItem {
	out := make([]models.QuotationLineItem, len(items))
	for i, item := range items {
		out[i] = models.QuotationLineItem{
			QuotationID:     quotationID,
			Position:        i,
			ItemNo:          item.ItemNo,
			Item:            item.Item,
			CustomerRemarks: item.CustomerRemarks,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			UnitRate:        item.UnitRate,
			Total:           item.Total,
			InternalRemark:  item.InternalRemark,
		}
	}
	return out
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

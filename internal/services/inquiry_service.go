// internal/services/inquiry_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omsmarine/vims-backend/internal/database"
	"github.com/omsmarine/vims-backend/internal/engine"
	"github.com/omsmarine/vims-backend/internal/models"
	"github.com/omsmarine/vims-backend/internal/utils"
)

type InquiryService struct {
	db *gorm.DB
}

type PICRef struct {
	UserID string `json:"pic_usr_id" validate:"required"`
	Name   string `json:"pic_name" validate:"required"`
}

type CreateInquiryRequest struct {
	VesselName        string               `json:"vessel_name" validate:"required,max=255"`
	Agent             string               `json:"agent" validate:"required,max=255"`
	Port              string               `json:"port" validate:"required,max=255"`
	ETA               time.Time            `json:"eta" validate:"required"`
	Categories        []engine.CategoryTag `json:"categories" validate:"required,min=1"`
	ReceivedAt        time.Time            `json:"received_at,omitempty"`
	QuotationDeadline *time.Time           `json:"quotation_deadline,omitempty"`
	KeyPIC            PICRef               `json:"key_pic" validate:"required"`
	SubPICs           []PICRef             `json:"sub_pics,omitempty" validate:"dive"`
}

type UpdateInquiryRequest struct {
	VesselName             *string              `json:"vessel_name,omitempty"`
	Agent                  *string              `json:"agent,omitempty"`
	Port                   *string              `json:"port,omitempty"`
	ETA                    *time.Time           `json:"eta,omitempty"`
	Categories             []engine.CategoryTag `json:"categories,omitempty"`
	QuotationDeadline      *time.Time           `json:"quotation_deadline,omitempty"`
	ClearQuotationDeadline bool                 `json:"clear_quotation_deadline,omitempty"`
}

type ReassignRequest struct {
	KeyPIC  PICRef   `json:"key_pic" validate:"required"`
	SubPICs []PICRef `json:"sub_pics,omitempty" validate:"dive"`
}

type TransitionRequest struct {
	Status models.InquiryStatus `json:"status" validate:"required,inquiry_status"`
}

type InquiryStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Submitted int64 `json:"quotation_submitted"`
	Active    int64 `json:"active"`
	Confirmed int64 `json:"confirmed"`
	Rejected  int64 `json:"rejected"`
}

func NewInquiryService(db *gorm.DB) *InquiryService {
	return &InquiryService{db: db}
}

// lifecycle builds an engine lifecycle whose audit appends land in tx, so an
// operation and its entry commit together.
func (s *InquiryService) lifecycle(tx *gorm.DB) *engine.Lifecycle {
	return engine.NewLifecycle(txRecorder{tx: tx})
}

func toAssignment(key PICRef, subs []PICRef) engine.PICAssignment {
	assignment := engine.PICAssignment{
		KeyPIC: engine.Identity{UserID: key.UserID, Name: key.Name},
	}
	for _, sub := range subs {
		assignment.SubPICs = append(assignment.SubPICs, engine.Identity{UserID: sub.UserID, Name: sub.Name})
	}
	return assignment
}

func (s *InquiryService) Create(req *CreateInquiryRequest, actor engine.Identity) (*models.Inquiry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var inquiry *models.Inquiry
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		reference, err := s.nextReference(tx)
		if err != nil {
			return err
		}

		lc := s.lifecycle(tx)
		lc.NewReference = func() string { return reference }

		created, err := lc.Create(engine.CreateInput{
			VesselName:        req.VesselName,
			Agent:             req.Agent,
			Port:              req.Port,
			ETA:               req.ETA,
			Categories:        engine.TagsToStrings(req.Categories),
			ReceivedAt:        req.ReceivedAt,
			QuotationDeadline: req.QuotationDeadline,
			Assignment:        toAssignment(req.KeyPIC, req.SubPICs),
		}, actor)
		if err != nil {
			return err
		}

		if err := tx.Create(created).Error; err != nil {
			return fmt.Errorf("failed to create inquiry: %w", err)
		}
		inquiry = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) nextReference(tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.Model(&models.Inquiry{}).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to derive reference number: %w", err)
	}
	return fmt.Sprintf("INQ-%04d", count+1), nil
}

func (s *InquiryService) Get(id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := s.db.Preload("SubPICs", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&inquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (s *InquiryService) List(params utils.PaginationParams) (utils.PaginationResult, error) {
	query := s.db.Model(&models.Inquiry{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Category != "" {
		canonical, err := engine.NormalizeCategory(params.Category)
		if err != nil {
			return utils.PaginationResult{}, err
		}
		query = query.Where("? = ANY(categories)", canonical)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"vessel_name ILIKE ? OR agent ILIKE ? OR port ILIKE ? OR reference_number ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.PaginationResult{}, fmt.Errorf("failed to count inquiries: %w", err)
	}

	var inquiries []models.Inquiry
	allowedSort := []string{"created_at", "updated_at", "eta", "received_at", "vessel_name", "status"}
	err := utils.ApplyPagination(utils.ApplySort(query, params, allowedSort), params).
		Preload("SubPICs", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&inquiries).Error
	if err != nil {
		return utils.PaginationResult{}, fmt.Errorf("failed to load inquiries: %w", err)
	}

	return utils.CreatePaginationResult(inquiries, total, params), nil
}

func (s *InquiryService) Stats() (*InquiryStats, error) {
	stats := &InquiryStats{}
	counts := []struct {
		status models.InquiryStatus
		target *int64
	}{
		{models.StatusPending, &stats.Pending},
		{models.StatusQuotationSubmitted, &stats.Submitted},
		{models.StatusActive, &stats.Active},
		{models.StatusConfirmed, &stats.Confirmed},
		{models.StatusRejected, &stats.Rejected},
	}

	if err := s.db.Model(&models.Inquiry{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count inquiries: %w", err)
	}
	for _, c := range counts {
		if err := s.db.Model(&models.Inquiry{}).Where("status = ?", c.status).Count(c.target).Error; err != nil {
			return nil, fmt.Errorf("failed to count inquiries: %w", err)
		}
	}
	return stats, nil
}

func (s *InquiryService) Transition(id uuid.UUID, req *TransitionRequest, actor engine.Identity) (*models.Inquiry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var inquiry *models.Inquiry
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		loaded, err := lockInquiry(tx, id)
		if err != nil {
			return err
		}

		if err := s.lifecycle(tx).Transition(loaded, req.Status, actor); err != nil {
			return err
		}

		updates := map[string]interface{}{"status": loaded.Status, "updated_at": loaded.UpdatedAt}
		if err := tx.Model(&models.Inquiry{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update inquiry status: %w", err)
		}
		inquiry = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) Reassign(id uuid.UUID, req *ReassignRequest, actor engine.Identity) (*models.Inquiry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var inquiry *models.Inquiry
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		loaded, err := lockInquiry(tx, id)
		if err != nil {
			return err
		}

		if err := s.lifecycle(tx).Reassign(loaded, toAssignment(req.KeyPIC, req.SubPICs), actor); err != nil {
			return err
		}

		// Replace the sub roster wholesale.
		if err := tx.Where("inquiry_id = ?", id).Delete(&models.InquiryPIC{}).Error; err != nil {
			return fmt.Errorf("failed to clear sub PICs: %w", err)
		}
		if len(loaded.SubPICs) > 0 {
			if err := tx.Create(&loaded.SubPICs).Error; err != nil {
				return fmt.Errorf("failed to save sub PICs: %w", err)
			}
		}
		updates := map[string]interface{}{
			"key_pic_user_id": loaded.KeyPICUserID,
			"key_pic_name":    loaded.KeyPICName,
			"updated_at":      loaded.UpdatedAt,
		}
		if err := tx.Model(&models.Inquiry{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update inquiry assignment: %w", err)
		}
		inquiry = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) Edit(id uuid.UUID, req *UpdateInquiryRequest, actor engine.Identity) (*models.Inquiry, error) {
	var inquiry *models.Inquiry
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		loaded, err := lockInquiry(tx, id)
		if err != nil {
			return err
		}

		patch := engine.EditPatch{
			VesselName:             req.VesselName,
			Agent:                  req.Agent,
			Port:                   req.Port,
			ETA:                    req.ETA,
			QuotationDeadline:      req.QuotationDeadline,
			ClearQuotationDeadline: req.ClearQuotationDeadline,
		}
		if req.Categories != nil {
			patch.Categories = engine.TagsToStrings(req.Categories)
		}

		if err := s.lifecycle(tx).Edit(loaded, patch, actor); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(loaded).Error; err != nil {
			return fmt.Errorf("failed to update inquiry: %w", err)
		}
		inquiry = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inquiry, nil
}

// lockInquiry loads an inquiry with its sub roster under FOR UPDATE, the
// per-inquiry write serialization the engine assumes of its caller.
func lockInquiry(tx *gorm.DB, id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := tx.Where("inquiry_id = ?", id).Order("position ASC").Find(&inquiry.SubPICs).Error; err != nil {
		return nil, fmt.Errorf("failed to load sub PICs: %w", err)
	}
	return &inquiry, nil
}

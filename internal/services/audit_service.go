// internal/services/audit_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omsmarine/vims-backend/internal/engine"
	"github.com/omsmarine/vims-backend/internal/models"
	"github.com/omsmarine/vims-backend/internal/utils"
)

// AuditService is the durable side of the audit ledger. It implements
// engine.Recorder, so the lifecycle can append entries straight into the
// store. Entries are append-only; there is no update or delete path.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(entry models.AuditEntry) error {
	return recordEntry(s.db, entry)
}

func recordEntry(db *gorm.DB, entry models.AuditEntry) error {
	if err := engine.ValidateEntry(entry); err != nil {
		return err
	}
	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// txRecorder scopes audit appends to one transaction, so a lifecycle
// operation and its entry commit or roll back together.
type txRecorder struct {
	tx *gorm.DB
}

func (r txRecorder) Record(entry models.AuditEntry) error {
	return recordEntry(r.tx, entry)
}

// EntriesFor returns one inquiry's trail ordered by timestamp, insertion
// order breaking ties. No entries is an empty slice, not an error.
func (s *AuditService) EntriesFor(inquiryID uuid.UUID) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := s.db.Where("inquiry_id = ?", inquiryID).
		Order("timestamp ASC, seq ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load audit entries: %w", err)
	}
	return entries, nil
}

// List pages through the whole ledger for the audit-trail screen.
func (s *AuditService) List(params utils.PaginationParams) (utils.PaginationResult, error) {
	query := s.db.Model(&models.AuditEntry{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("details ILIKE ? OR actor_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.PaginationResult{}, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var entries []models.AuditEntry
	err := utils.ApplyPagination(query.Order("timestamp DESC, seq DESC"), params).Find(&entries).Error
	if err != nil {
		return utils.PaginationResult{}, fmt.Errorf("failed to load audit entries: %w", err)
	}

	return utils.CreatePaginationResult(entries, total, params), nil
}

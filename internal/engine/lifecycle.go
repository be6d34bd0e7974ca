// internal/engine/lifecycle.go
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omsmarine/vims-backend/internal/models"
)

// legalEdges is the full transition table. Anything missing here, including
// self and backward edges, is rejected.
var legalEdges = map[models.InquiryStatus][]models.InquiryStatus{
	models.StatusPending:            {models.StatusQuotationSubmitted, models.StatusRejected},
	models.StatusQuotationSubmitted: {models.StatusActive, models.StatusRejected},
	models.StatusActive:             {models.StatusConfirmed, models.StatusRejected},
}

// CanTransition reports whether from -> to is a legal status edge.
func CanTransition(from, to models.InquiryStatus) bool {
	for _, next := range legalEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Lifecycle drives the inquiry state machine. Every successful operation
// mutates the inquiry in place and appends exactly one entry to the recorder;
// failed operations leave the inquiry untouched and append nothing.
type Lifecycle struct {
	recorder Recorder

	// Overridable for deterministic tests and for callers that assign ids
	// and reference numbers from their own store.
	Now          func() time.Time
	NewID        func() uuid.UUID
	NewReference func() string
}

func NewLifecycle(recorder Recorder) *Lifecycle {
	return &Lifecycle{
		recorder: recorder,
		Now:      time.Now,
		NewID:    uuid.New,
		NewReference: func() string {
			return "INQ-" + strings.ToUpper(uuid.NewString()[:8])
		},
	}
}

type CreateInput struct {
	VesselName        string
	Agent             string
	Port              string
	ETA               time.Time
	Categories        []string
	ReceivedAt        time.Time
	QuotationDeadline *time.Time
	Assignment        PICAssignment
}

// Create validates the input, assembles a new Pending inquiry and records a
// Created audit entry. Categories are normalized; a key PIC is mandatory
// already at creation time.
func (l *Lifecycle) Create(in CreateInput, actor Identity) (*models.Inquiry, error) {
	if strings.TrimSpace(in.VesselName) == "" {
		return nil, newValidationError("vessel_name", "vessel name is required")
	}
	if strings.TrimSpace(in.Agent) == "" {
		return nil, newValidationError("agent", "agent is required")
	}
	if strings.TrimSpace(in.Port) == "" {
		return nil, newValidationError("port", "port is required")
	}
	if in.ETA.IsZero() {
		return nil, newValidationError("eta", "eta is required")
	}
	categories, err := NormalizeCategories(in.Categories)
	if err != nil {
		return nil, err
	}
	if err := in.Assignment.Validate(); err != nil {
		return nil, err
	}

	now := l.Now()
	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = now
	}

	inquiry := &models.Inquiry{
		BaseModel: models.BaseModel{
			ID:        l.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReferenceNumber:   l.NewReference(),
		VesselName:        strings.TrimSpace(in.VesselName),
		Agent:             strings.TrimSpace(in.Agent),
		Port:              strings.TrimSpace(in.Port),
		ETA:               in.ETA,
		Categories:        categories,
		Status:            models.StatusPending,
		ReceivedAt:        receivedAt,
		QuotationDeadline: in.QuotationDeadline,
	}
	applyAssignment(inquiry, in.Assignment)

	entry := models.AuditEntry{
		InquiryID: inquiry.ID,
		Action:    models.ActionCreated,
		ActorID:   actor.UserID,
		ActorName: actor.Name,
		Timestamp: now,
		Details:   fmt.Sprintf("Inquiry %s created for vessel %s", inquiry.ReferenceNumber, inquiry.VesselName),
	}
	if err := l.recorder.Record(entry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// Transition moves the inquiry along a legal status edge and records a
// Status Changed entry naming the old and new status.
func (l *Lifecycle) Transition(inquiry *models.Inquiry, target models.InquiryStatus, actor Identity) error {
	if !target.Valid() {
		return newValidationError("status", "unknown status "+string(target))
	}
	from := inquiry.Status
	if !CanTransition(from, target) {
		return &InvalidTransitionError{From: from, To: target}
	}

	now := l.Now()
	entry := models.AuditEntry{
		InquiryID: inquiry.ID,
		Action:    models.ActionStatusChanged,
		ActorID:   actor.UserID,
		ActorName: actor.Name,
		Timestamp: now,
		Details:   fmt.Sprintf("Status changed from %s to %s", from, target),
	}
	if err := l.recorder.Record(entry); err != nil {
		return err
	}

	inquiry.Status = target
	inquiry.UpdatedAt = now
	return nil
}

// Reassign replaces the PIC roster wholesale and records an Assigned entry.
func (l *Lifecycle) Reassign(inquiry *models.Inquiry, assignment PICAssignment, actor Identity) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	now := l.Now()
	entry := models.AuditEntry{
		InquiryID: inquiry.ID,
		Action:    models.ActionAssigned,
		ActorID:   actor.UserID,
		ActorName: actor.Name,
		Timestamp: now,
		Details: fmt.Sprintf("Key PIC set to %s (%s) with %d sub PICs",
			assignment.KeyPIC.Name, assignment.KeyPIC.UserID, len(assignment.SubPICs)),
	}
	if err := l.recorder.Record(entry); err != nil {
		return err
	}

	applyAssignment(inquiry, assignment)
	inquiry.UpdatedAt = now
	return nil
}

// EditPatch carries the mutable descriptive fields. Nil pointers mean
// unchanged; status, id, reference number and received time are not editable.
type EditPatch struct {
	VesselName             *string
	Agent                  *string
	Port                   *string
	ETA                    *time.Time
	Categories             []string
	QuotationDeadline      *time.Time
	ClearQuotationDeadline bool
}

// Edit applies a partial update and records one Updated entry naming the
// fields that changed. An empty patch is rejected rather than audited.
func (l *Lifecycle) Edit(inquiry *models.Inquiry, patch EditPatch, actor Identity) error {
	var categories []string
	if patch.Categories != nil {
		normalized, err := NormalizeCategories(patch.Categories)
		if err != nil {
			return err
		}
		categories = normalized
	}
	if patch.VesselName != nil && strings.TrimSpace(*patch.VesselName) == "" {
		return newValidationError("vessel_name", "vessel name cannot be empty")
	}
	if patch.Agent != nil && strings.TrimSpace(*patch.Agent) == "" {
		return newValidationError("agent", "agent cannot be empty")
	}
	if patch.Port != nil && strings.TrimSpace(*patch.Port) == "" {
		return newValidationError("port", "port cannot be empty")
	}
	if patch.ETA != nil && patch.ETA.IsZero() {
		return newValidationError("eta", "eta cannot be empty")
	}

	var changed []string
	if patch.VesselName != nil {
		changed = append(changed, "vessel_name")
	}
	if patch.Agent != nil {
		changed = append(changed, "agent")
	}
	if patch.Port != nil {
		changed = append(changed, "port")
	}
	if patch.ETA != nil {
		changed = append(changed, "eta")
	}
	if categories != nil {
		changed = append(changed, "categories")
	}
	if patch.QuotationDeadline != nil || patch.ClearQuotationDeadline {
		changed = append(changed, "quotation_deadline")
	}
	if len(changed) == 0 {
		return newValidationError("patch", "no fields to update")
	}

	now := l.Now()
	entry := models.AuditEntry{
		InquiryID: inquiry.ID,
		Action:    models.ActionUpdated,
		ActorID:   actor.UserID,
		ActorName: actor.Name,
		Timestamp: now,
		Details:   "Updated " + strings.Join(changed, ", "),
	}
	if err := l.recorder.Record(entry); err != nil {
		return err
	}

	if patch.VesselName != nil {
		inquiry.VesselName = strings.TrimSpace(*patch.VesselName)
	}
	if patch.Agent != nil {
		inquiry.Agent = strings.TrimSpace(*patch.Agent)
	}
	if patch.Port != nil {
		inquiry.Port = strings.TrimSpace(*patch.Port)
	}
	if patch.ETA != nil {
		inquiry.ETA = *patch.ETA
	}
	if categories != nil {
		inquiry.Categories = categories
	}
	if patch.ClearQuotationDeadline {
		inquiry.QuotationDeadline = nil
	} else if patch.QuotationDeadline != nil {
		inquiry.QuotationDeadline = patch.QuotationDeadline
	}
	inquiry.UpdatedAt = now
	return nil
}

// Assignment returns the inquiry's roster in engine shape.
func Assignment(inquiry *models.Inquiry) PICAssignment {
	subs := make([]Identity, len(inquiry.SubPICs))
	for i, pic := range inquiry.SubPICs {
		subs[i] = Identity{UserID: pic.UserID, Name: pic.Name}
	}
	return PICAssignment{
		KeyPIC:  Identity{UserID: inquiry.KeyPICUserID, Name: inquiry.KeyPICName},
		SubPICs: subs,
	}
}

func applyAssignment(inquiry *models.Inquiry, assignment PICAssignment) {
	inquiry.KeyPICUserID = assignment.KeyPIC.UserID
	inquiry.KeyPICName = assignment.KeyPIC.Name
	subs := make([]models.InquiryPIC, len(assignment.SubPICs))
	for i, sub := range assignment.SubPICs {
		subs[i] = models.InquiryPIC{
			InquiryID: inquiry.ID,
			UserID:    sub.UserID,
			Name:      sub.Name,
			Position:  i,
		}
	}
	inquiry.SubPICs = subs
}

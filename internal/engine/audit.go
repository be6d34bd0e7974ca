// internal/engine/audit.go
package engine

import (
	"iter"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/omsmarine/vims-backend/internal/models"
)

// Recorder receives exactly one audit entry per lifecycle operation. The
// gorm-backed audit service implements it in production; MemoryRecorder
// serves standalone use and tests.
type Recorder interface {
	Record(entry models.AuditEntry) error
}

// ValidateEntry checks the ledger invariants every Recorder must enforce.
func ValidateEntry(entry models.AuditEntry) error {
	if entry.InquiryID == uuid.Nil {
		return newValidationError("inquiry_id", "audit entry requires an inquiry id")
	}
	if !entry.Action.Valid() {
		return newValidationError("action", "unknown audit action "+string(entry.Action))
	}
	return nil
}

// MemoryRecorder is an append-only, process-lifetime audit ledger. A single
// mutex serializes appends so entry order per inquiry never interleaves.
type MemoryRecorder struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	seq     int64
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (r *MemoryRecorder) Record(entry models.AuditEntry) error {
	if err := ValidateEntry(entry); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	entry.Seq = r.seq
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.entries = append(r.entries, entry)
	return nil
}

// EntriesFor yields the entries of one inquiry ordered by timestamp, ties
// broken by insertion order. The sequence is restartable; each iteration
// walks a snapshot taken when it starts. No entries is an empty sequence,
// not an error.
func (r *MemoryRecorder) EntriesFor(inquiryID uuid.UUID) iter.Seq[models.AuditEntry] {
	return func(yield func(models.AuditEntry) bool) {
		for _, entry := range r.snapshot(inquiryID) {
			if !yield(entry) {
				return
			}
		}
	}
}

func (r *MemoryRecorder) snapshot(inquiryID uuid.UUID) []models.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.InquiryID == inquiryID {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// internal/engine/audit_test.go
package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omsmarine/vims-backend/internal/models"
)

func TestRecordValidation(t *testing.T) {
	r := NewMemoryRecorder()

	err := r.Record(models.AuditEntry{Action: models.ActionCreated})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr, "empty inquiry id rejected")

	err = r.Record(models.AuditEntry{InquiryID: uuid.New(), Action: "Deleted"})
	require.ErrorAs(t, err, &verr, "unknown action rejected")
}

func TestEntriesForEmpty(t *testing.T) {
	r := NewMemoryRecorder()
	count := 0
	for range r.EntriesFor(uuid.New()) {
		count++
	}
	assert.Zero(t, count)
}

func TestEntriesForOrdering(t *testing.T) {
	r := NewMemoryRecorder()
	id := uuid.New()
	other := uuid.New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Same timestamp on the first two: insertion order must break the tie.
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: id, Action: models.ActionCreated, Timestamp: base, Details: "first"}))
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: id, Action: models.ActionAssigned, Timestamp: base, Details: "second"}))
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: other, Action: models.ActionCreated, Timestamp: base}))
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: id, Action: models.ActionStatusChanged, Timestamp: base.Add(time.Minute), Details: "third"}))

	var details []string
	for e := range r.EntriesFor(id) {
		details = append(details, e.Details)
	}
	assert.Equal(t, []string{"first", "second", "third"}, details)
}

func TestEntriesForRestartable(t *testing.T) {
	r := NewMemoryRecorder()
	id := uuid.New()
	now := time.Now()
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: id, Action: models.ActionCreated, Timestamp: now}))
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: id, Action: models.ActionUpdated, Timestamp: now.Add(time.Second)}))

	seq := r.EntriesFor(id)
	for range seq {
		break
	}
	count := 0
	for range seq {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestRecordAssignsSequence(t *testing.T) {
	r := NewMemoryRecorder()
	id := uuid.New()
	now := time.Now()
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: id, Action: models.ActionCreated, Timestamp: now}))
	require.NoError(t, r.Record(models.AuditEntry{InquiryID: id, Action: models.ActionUpdated, Timestamp: now}))

	var seqs []int64
	for e := range r.EntriesFor(id) {
		seqs = append(seqs, e.Seq)
		assert.NotEqual(t, uuid.Nil, e.ID)
	}
	assert.Equal(t, []int64{1, 2}, seqs)
}

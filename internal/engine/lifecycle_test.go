// internal/engine/lifecycle_test.go
package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omsmarine/vims-backend/internal/models"
)

func testLifecycle(t *testing.T) (*Lifecycle, *MemoryRecorder) {
	t.Helper()
	recorder := NewMemoryRecorder()
	lc := NewLifecycle(recorder)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	step := 0
	lc.Now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}
	return lc, recorder
}

func validCreateInput() CreateInput {
	return CreateInput{
		VesselName: "MV Coral Sea",
		Agent:      "Harbor Shipping Pte",
		Port:       "Singapore",
		ETA:        time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		Categories: []string{"Bonded", "Provisions"},
		Assignment: PICAssignment{
			KeyPIC:  Identity{UserID: "U1", Name: "Maria Santos"},
			SubPICs: []Identity{{UserID: "U2", Name: "John Silva"}},
		},
	}
}

func entriesFor(t *testing.T, r *MemoryRecorder, id uuid.UUID) []models.AuditEntry {
	t.Helper()
	var out []models.AuditEntry
	for e := range r.EntriesFor(id) {
		out = append(out, e)
	}
	return out
}

func TestCreateInquiry(t *testing.T) {
	lc, recorder := testLifecycle(t)
	actor := Identity{UserID: "U1", Name: "Maria Santos"}

	inquiry, err := lc.Create(validCreateInput(), actor)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, inquiry.ID)
	assert.NotEmpty(t, inquiry.ReferenceNumber)
	assert.Equal(t, models.StatusPending, inquiry.Status)
	assert.Equal(t, []string{"Bonded", "Provisions"}, []string(inquiry.Categories))
	assert.Equal(t, "U1", inquiry.KeyPICUserID)
	require.Len(t, inquiry.SubPICs, 1)
	assert.Equal(t, "U2", inquiry.SubPICs[0].UserID)
	assert.False(t, inquiry.ReceivedAt.IsZero())

	entries := entriesFor(t, recorder, inquiry.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreated, entries[0].Action)
	assert.Equal(t, "U1", entries[0].ActorID)
	assert.Contains(t, entries[0].Details, inquiry.ReferenceNumber)
}

func TestCreateInquiryValidation(t *testing.T) {
	lc, _ := testLifecycle(t)
	actor := Identity{UserID: "U1", Name: "Maria Santos"}

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing vessel", func(in *CreateInput) { in.VesselName = "  " }},
		{"missing agent", func(in *CreateInput) { in.Agent = "" }},
		{"missing port", func(in *CreateInput) { in.Port = "" }},
		{"missing eta", func(in *CreateInput) { in.ETA = time.Time{} }},
		{"no categories", func(in *CreateInput) { in.Categories = nil }},
		{"unknown category", func(in *CreateInput) { in.Categories = []string{"Cargo"} }},
		{"missing key pic", func(in *CreateInput) { in.Assignment.KeyPIC = Identity{} }},
		{"key pic among subs", func(in *CreateInput) {
			in.Assignment.SubPICs = append(in.Assignment.SubPICs, Identity{UserID: "U1", Name: "Maria Santos"})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := lc.Create(in, actor)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestTransitionClosure(t *testing.T) {
	legal := map[models.InquiryStatus][]models.InquiryStatus{
		models.StatusPending:            {models.StatusQuotationSubmitted, models.StatusRejected},
		models.StatusQuotationSubmitted: {models.StatusActive, models.StatusRejected},
		models.StatusActive:             {models.StatusConfirmed, models.StatusRejected},
		models.StatusConfirmed:          {},
		models.StatusRejected:           {},
	}

	actor := Identity{UserID: "U3", Name: "Purchasing Head"}
	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			lc, recorder := testLifecycle(t)
			inquiry, err := lc.Create(validCreateInput(), actor)
			require.NoError(t, err)
			inquiry.Status = from

			err = lc.Transition(inquiry, to, actor)

			allowed := false
			for _, next := range legal[from] {
				if next == to {
					allowed = true
				}
			}
			entries := entriesFor(t, recorder, inquiry.ID)
			if allowed {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, inquiry.Status)
				require.Len(t, entries, 2)
				last := entries[len(entries)-1]
				assert.Equal(t, models.ActionStatusChanged, last.Action)
				assert.Contains(t, last.Details, string(from))
				assert.Contains(t, last.Details, string(to))
			} else {
				var terr *InvalidTransitionError
				require.ErrorAs(t, err, &terr, "%s -> %s", from, to)
				assert.Equal(t, from, terr.From)
				assert.Equal(t, to, terr.To)
				assert.Equal(t, from, inquiry.Status, "failed transition must not mutate")
				assert.Len(t, entries, 1, "failed transition must not audit")
			}
		}
	}
}

func TestTransitionPendingToActiveBlocked(t *testing.T) {
	lc, recorder := testLifecycle(t)
	actor := Identity{UserID: "U1", Name: "Maria Santos"}
	inquiry, err := lc.Create(validCreateInput(), actor)
	require.NoError(t, err)

	err = lc.Transition(inquiry, models.StatusActive, actor)
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.StatusPending, inquiry.Status)
	assert.Len(t, entriesFor(t, recorder, inquiry.ID), 1)
}

func TestTransitionChain(t *testing.T) {
	lc, recorder := testLifecycle(t)
	actor := Identity{UserID: "U1", Name: "Maria Santos"}
	inquiry, err := lc.Create(validCreateInput(), actor)
	require.NoError(t, err)

	require.NoError(t, lc.Transition(inquiry, models.StatusQuotationSubmitted, actor))
	require.NoError(t, lc.Transition(inquiry, models.StatusActive, actor))

	entries := entriesFor(t, recorder, inquiry.ID)
	require.Len(t, entries, 3)
	assert.Equal(t, models.ActionCreated, entries[0].Action)
	assert.Equal(t, models.ActionStatusChanged, entries[1].Action)
	assert.Equal(t, models.ActionStatusChanged, entries[2].Action)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Timestamp.Before(entries[i-1].Timestamp))
	}
}

func TestReassign(t *testing.T) {
	lc, recorder := testLifecycle(t)
	actor := Identity{UserID: "U3", Name: "Purchasing Head"}
	inquiry, err := lc.Create(validCreateInput(), actor)
	require.NoError(t, err)

	next := PICAssignment{
		KeyPIC:  Identity{UserID: "U2", Name: "John Silva"},
		SubPICs: []Identity{{UserID: "U4", Name: "Ana Cruz"}, {UserID: "U5", Name: "Leo Tan"}},
	}
	require.NoError(t, lc.Reassign(inquiry, next, actor))

	assert.Equal(t, "U2", inquiry.KeyPICUserID)
	require.Len(t, inquiry.SubPICs, 2)
	assert.Equal(t, 0, inquiry.SubPICs[0].Position)
	assert.Equal(t, 1, inquiry.SubPICs[1].Position)

	entries := entriesFor(t, recorder, inquiry.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionAssigned, entries[1].Action)
}

func TestReassignRejectsDuplicates(t *testing.T) {
	lc, recorder := testLifecycle(t)
	actor := Identity{UserID: "U3", Name: "Purchasing Head"}
	inquiry, err := lc.Create(validCreateInput(), actor)
	require.NoError(t, err)

	bad := []PICAssignment{
		{KeyPIC: Identity{}},
		{KeyPIC: Identity{UserID: "U2", Name: "John Silva"}, SubPICs: []Identity{{UserID: "U2", Name: "John Silva"}}},
		{KeyPIC: Identity{UserID: "U2", Name: "John Silva"}, SubPICs: []Identity{
			{UserID: "U4", Name: "Ana Cruz"}, {UserID: "U4", Name: "Ana Cruz"},
		}},
	}
	for _, assignment := range bad {
		err := lc.Reassign(inquiry, assignment, actor)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}

	assert.Equal(t, "U1", inquiry.KeyPICUserID, "failed reassign must not mutate")
	assert.Len(t, entriesFor(t, recorder, inquiry.ID), 1)
}

func TestEdit(t *testing.T) {
	lc, recorder := testLifecycle(t)
	actor := Identity{UserID: "U1", Name: "Maria Santos"}
	inquiry, err := lc.Create(validCreateInput(), actor)
	require.NoError(t, err)
	before := inquiry.UpdatedAt

	vessel := "MV Pacific Dawn"
	deadline := time.Date(2026, 3, 8, 17, 0, 0, 0, time.UTC)
	patch := EditPatch{
		VesselName:        &vessel,
		Categories:        []string{"misc"},
		QuotationDeadline: &deadline,
	}
	require.NoError(t, lc.Edit(inquiry, patch, actor))

	assert.Equal(t, "MV Pacific Dawn", inquiry.VesselName)
	assert.Equal(t, []string{"Miscellaneous"}, []string(inquiry.Categories))
	require.NotNil(t, inquiry.QuotationDeadline)
	assert.True(t, inquiry.UpdatedAt.After(before))

	entries := entriesFor(t, recorder, inquiry.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionUpdated, entries[1].Action)
	assert.Contains(t, entries[1].Details, "vessel_name")
	assert.Contains(t, entries[1].Details, "categories")
	assert.Contains(t, entries[1].Details, "quotation_deadline")
	assert.NotContains(t, entries[1].Details, "agent")
}

func TestEditEmptyPatch(t *testing.T) {
	lc, recorder := testLifecycle(t)
	actor := Identity{UserID: "U1", Name: "Maria Santos"}
	inquiry, err := lc.Create(validCreateInput(), actor)
	require.NoError(t, err)

	err = lc.Edit(inquiry, EditPatch{}, actor)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, entriesFor(t, recorder, inquiry.ID), 1)
}

func TestEditClearDeadline(t *testing.T) {
	lc, _ := testLifecycle(t)
	actor := Identity{UserID: "U1", Name: "Maria Santos"}
	in := validCreateInput()
	deadline := time.Date(2026, 3, 8, 17, 0, 0, 0, time.UTC)
	in.QuotationDeadline = &deadline
	inquiry, err := lc.Create(in, actor)
	require.NoError(t, err)

	require.NoError(t, lc.Edit(inquiry, EditPatch{ClearQuotationDeadline: true}, actor))
	assert.Nil(t, inquiry.QuotationDeadline)
}

// internal/engine/quotation.go
package engine

import (
	"iter"
	"time"

	"github.com/google/uuid"
)

// Quotation is an ordered, mutable line-item collection. There is no state
// machine here: one generation step per call, then positional edits until the
// surrounding system stops asking for them.
type Quotation struct {
	InquiryID   *uuid.UUID `json:"inquiry_id,omitempty"`
	LineItems   []LineItem `json:"line_items"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Builder stamps quotations with a generation time. Now is overridable for
// deterministic tests.
type Builder struct {
	Now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

// FromMappedRows wraps already-projected line items in generation order.
// Items are not deduplicated; regenerating replaces the whole sequence.
func (b *Builder) FromMappedRows(inquiryID *uuid.UUID, items iter.Seq[LineItem]) *Quotation {
	collected := []LineItem{}
	for item := range items {
		collected = append(collected, item)
	}
	return &Quotation{
		InquiryID:   inquiryID,
		LineItems:   collected,
		GeneratedAt: b.Now(),
	}
}

// FromManualEntries wraps user-typed line items in insertion order. Entries
// already conform to the target schema; empty fields are permitted.
func (b *Builder) FromManualEntries(inquiryID *uuid.UUID, entries []LineItem) *Quotation {
	items := make([]LineItem, len(entries))
	copy(items, entries)
	return &Quotation{
		InquiryID:   inquiryID,
		LineItems:   items,
		GeneratedAt: b.Now(),
	}
}

// AddLineItem appends one item.
func (q *Quotation) AddLineItem(item LineItem) {
	q.LineItems = append(q.LineItems, item)
}

// UpdateLineItem replaces the item at index.
func (q *Quotation) UpdateLineItem(index int, item LineItem) error {
	if index < 0 || index >= len(q.LineItems) {
		return &IndexOutOfRangeError{Index: index, Length: len(q.LineItems)}
	}
	q.LineItems[index] = item
	return nil
}

// RemoveLineItem deletes the item at index, shifting later items down.
func (q *Quotation) RemoveLineItem(index int) error {
	if index < 0 || index >= len(q.LineItems) {
		return &IndexOutOfRangeError{Index: index, Length: len(q.LineItems)}
	}
	q.LineItems = append(q.LineItems[:index], q.LineItems[index+1:]...)
	return nil
}

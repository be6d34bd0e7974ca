// internal/engine/errors.go
package engine

import (
	"fmt"

	"github.com/omsmarine/vims-backend/internal/models"
)

// ValidationError reports malformed input to a constructor or mutator.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTransitionError reports an illegal status edge. From and To are kept
// so callers can explain why the action is blocked.
type InvalidTransitionError struct {
	From models.InquiryStatus
	To   models.InquiryStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// IndexOutOfRangeError reports a positional line-item mutation outside bounds.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("line item index %d out of range [0, %d)", e.Index, e.Length)
}

// internal/engine/pic.go
package engine

import "strings"

// Identity is a resolved reference to a staff member. User lookup belongs to
// the surrounding system; the engine only carries id and display name.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

func (id Identity) zero() bool {
	return strings.TrimSpace(id.UserID) == ""
}

// PICAssignment is the person-in-charge roster of an inquiry: one mandatory
// key PIC plus an ordered list of sub PICs.
type PICAssignment struct {
	KeyPIC  Identity   `json:"key_pic"`
	SubPICs []Identity `json:"sub_pics,omitempty"`
}

// Validate enforces the roster invariants: key PIC present, no sub PIC equal
// to the key PIC, no duplicate sub PIC ids.
func (a PICAssignment) Validate() error {
	if a.KeyPIC.zero() {
		return newValidationError("key_pic", "key PIC is required")
	}
	seen := make(map[string]bool, len(a.SubPICs))
	for _, sub := range a.SubPICs {
		if sub.zero() {
			return newValidationError("sub_pics", "sub PIC with empty user id")
		}
		if sub.UserID == a.KeyPIC.UserID {
			return newValidationError("sub_pics", "sub PIC "+sub.UserID+" duplicates the key PIC")
		}
		if seen[sub.UserID] {
			return newValidationError("sub_pics", "duplicate sub PIC "+sub.UserID)
		}
		seen[sub.UserID] = true
	}
	return nil
}

// Package values contains domain value objects that encapsulate
// primitive types with validation.
package values

import (
	"fmt"

	"github.com/google/uuid"
)

// DispatchID uniquely identifies one control press as it flows through the
// dispatch pipeline, so every log line of a macro can be correlated.
type DispatchID struct {
	value uuid.UUID
}

// NewDispatchID creates a new random dispatch ID
func NewDispatchID() DispatchID {
	return DispatchID{value: uuid.New()}
}

// ParseDispatchID parses a string into a DispatchID
func ParseDispatchID(s string) (DispatchID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DispatchID{}, fmt.Errorf("invalid dispatch ID: %w", err)
	}
	return DispatchID{value: id}, nil
}

// String returns the string representation
func (d DispatchID) String() string {
	return d.value.String()
}

// IsZero returns true if this is the zero value
func (d DispatchID) IsZero() bool {
	return d.value == uuid.Nil
}

// Equals checks if two DispatchIDs are equal
func (d DispatchID) Equals(other DispatchID) bool {
	return d.value == other.value
}

// MarshalJSON implements json.Marshaler
func (d DispatchID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *DispatchID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 {
		return fmt.Errorf("invalid dispatch ID JSON")
	}
	id, err := ParseDispatchID(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = id
	return nil
}

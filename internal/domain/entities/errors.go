package entities

import (
	"errors"
	"fmt"

	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// NotFoundError indicates an operation referenced an entity that does not
// exist.
type NotFoundError struct {
	Kind values.EntityKind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NewNotFound creates a NotFoundError.
func NewNotFound(kind values.EntityKind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError indicates an operation was rejected because its input
// is invalid. No state was changed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrNameRequired is returned for blank user-supplied names.
var ErrNameRequired = NewValidation("name", "name required")

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Package apperrors defines application-level error types.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
)

// ValidationError indicates a request or document failed validation.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// CapabilityError indicates an action needed a capability that was not granted.
type CapabilityError struct {
	Reason   string
	Required capabilities.Capability
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability error: %s (%s not granted)", e.Reason, e.Required)
}

// NewCapabilityError creates a new capability error.
func NewCapabilityError(reason string, required capabilities.Capability) *CapabilityError {
	return &CapabilityError{
		Required: required,
		Reason:   reason,
	}
}

// ExecutionError is a driver failure while running one action of a
// control's binding. The dispatcher logs it and moves on.
type ExecutionError struct {
	ControlID string
	Action    string
	Cause     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed for control %s: %s: %v", e.ControlID, e.Action, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionError wraps a driver error for controlID's action.
func NewExecutionError(controlID, action string, cause error) *ExecutionError {
	if cause == nil {
		cause = errors.New("unknown driver error")
	}
	return &ExecutionError{ControlID: controlID, Action: action, Cause: cause}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

// IsClientError reports whether err was caused by the caller's input:
// a validation failure or a reference to something that does not exist.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || entities.IsValidation(err) || entities.IsNotFound(err)
}

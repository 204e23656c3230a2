// Package validation checks workspace documents before they are decoded
// and normalized.
package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed workspace_schema.json
var workspaceSchema []byte

// SupportedFormatVersions is the range of workspace formatVersion values
// this build can read. Documents without a formatVersion predate the field
// and are accepted.
const SupportedFormatVersions = ">= 1.0.0, < 2.0.0"

// WorkspaceValidator checks the structure of a raw workspace document.
// Semantic repairs (orphans, overlaps, stale selection) are left to
// normalization; the schema only rejects documents that cannot be decoded
// into a workspace at all.
type WorkspaceValidator struct {
	schema     *jsonschema.Schema
	constraint *semver.Constraints
}

// NewWorkspaceValidator compiles the embedded workspace schema.
func NewWorkspaceValidator() (*WorkspaceValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("workspace.json", bytes.NewReader(workspaceSchema)); err != nil {
		return nil, fmt.Errorf("failed to add workspace schema: %w", err)
	}
	schema, err := compiler.Compile("workspace.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile workspace schema: %w", err)
	}

	constraint, err := semver.NewConstraint(SupportedFormatVersions)
	if err != nil {
		return nil, fmt.Errorf("invalid format version constraint: %w", err)
	}
	return &WorkspaceValidator{schema: schema, constraint: constraint}, nil
}

// Validate checks data against the workspace schema and the supported
// format versions.
func (v *WorkspaceValidator) Validate(data []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return apperrors.NewValidationError("workspace", fmt.Sprintf("invalid JSON: %v", err))
	}

	if err := v.schema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return apperrors.NewValidationError("workspace", "schema validation failed", collectMessages(ve)...)
		}
		return fmt.Errorf("workspace validation failed: %w", err)
	}

	root, _ := doc.(map[string]any)
	if raw, ok := root["formatVersion"].(string); ok && raw != "" {
		return v.CheckFormatVersion(raw)
	}
	return nil
}

// CheckFormatVersion reports whether a formatVersion can be read by this
// build.
func (v *WorkspaceValidator) CheckFormatVersion(raw string) error {
	version, err := semver.NewVersion(raw)
	if err != nil {
		return apperrors.NewValidationError("formatVersion", fmt.Sprintf("%q is not a semantic version", raw))
	}
	if !v.constraint.Check(version) {
		return apperrors.NewValidationError("formatVersion",
			fmt.Sprintf("version %s is not supported (want %s)", version, SupportedFormatVersions))
	}
	return nil
}

// collectMessages flattens a schema error tree into "location: message"
// lines.
func collectMessages(err *jsonschema.ValidationError) []string {
	var messages []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	if len(messages) == 0 {
		messages = append(messages, err.Error())
	}
	return messages
}

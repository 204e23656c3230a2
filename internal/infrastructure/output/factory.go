// Package output renders workspace reports for the command line.
package output

import (
	"fmt"
	"io"

	"github.com/remotedeck/remotedeck/internal/application/dto"
)

// Formatter writes a report in one format.
type Formatter interface {
	Format(report dto.WorkspaceReport) error
}

// FormatterFactory creates formatters by name.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// Create returns a formatter for the given format name.
func (f *FormatterFactory) Create(format string, writer io.Writer) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTextFormatter(writer), nil
	case "json":
		return NewJSONFormatter(writer, true), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, f.SupportedFormats(),
		)
	}
}

// SupportedFormats returns list of available format names.
func (f *FormatterFactory) SupportedFormats() []string {
	return []string{"text", "json", "yaml"}
}

package output

import (
	"fmt"
	"io"

	"github.com/remotedeck/remotedeck/internal/application/dto"
)

// TextFormatter formats reports for a terminal.
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the report as plain text.
//
//nolint:errcheck // best-effort terminal output
func (f *TextFormatter) Format(report dto.WorkspaceReport) error {
	if !report.Valid {
		fmt.Fprintf(f.writer, "%s: invalid\n", report.Path)
		for _, issue := range report.Issues {
			fmt.Fprintf(f.writer, "  - %s\n", issue)
		}
		return nil
	}

	fmt.Fprintf(f.writer, "%s: valid (%d profiles, %d pages, %d controls)\n",
		report.Path, report.Profiles, report.Pages, report.Controls)
	if len(report.Repairs) > 0 {
		fmt.Fprintf(f.writer, "%d repairs will be applied on load:\n", len(report.Repairs))
		for _, repair := range report.Repairs {
			fmt.Fprintf(f.writer, "  - %s\n", repair)
		}
	}
	return nil
}

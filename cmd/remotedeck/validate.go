package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/services"
	"github.com/remotedeck/remotedeck/internal/infrastructure/output"
	"github.com/remotedeck/remotedeck/internal/infrastructure/validation"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate <workspace.json>",
	Short: "Check a workspace file",
	Long: `Validate a workspace document against the workspace schema and
format version, then list the repairs that would be applied when it is
loaded. The file is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateWorkspaceFile(cmd.OutOrStdout(), args[0], validateFormat)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json, yaml)")
}

// validateWorkspaceFile writes a report for path. An invalid document is
// reported and its validation error returned.
func validateWorkspaceFile(out io.Writer, path, format string) error {
	formatter, err := output.NewFormatterFactory().Create(format, out)
	if err != nil {
		return err
	}

	report, checkErr := inspectWorkspace(path)
	if report.Path == "" {
		return checkErr
	}
	if err := formatter.Format(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return checkErr
}

func inspectWorkspace(path string) (dto.WorkspaceReport, error) {
	//nolint:gosec // G304: path is given on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return dto.WorkspaceReport{}, fmt.Errorf("failed to read workspace: %w", err)
	}

	validator, err := validation.NewWorkspaceValidator()
	if err != nil {
		return dto.WorkspaceReport{}, err
	}
	report := dto.WorkspaceReport{Path: path}
	if err := validator.Validate(data); err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			report.Issues = append(report.Issues, ve.Details...)
		}
		if len(report.Issues) == 0 {
			report.Issues = []string{err.Error()}
		}
		return report, err
	}

	var ws entities.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return dto.WorkspaceReport{}, fmt.Errorf("failed to decode workspace: %w", err)
	}
	report.Valid = true
	report.FormatVersion = ws.FormatVersion
	for _, fix := range services.NormalizeWorkspace(&ws) {
		report.Repairs = append(report.Repairs, fix.String())
	}

	report.Profiles = len(ws.Profiles)
	for _, p := range ws.Profiles {
		report.Pages += len(p.Pages)
		for _, pg := range p.Pages {
			report.Controls += len(pg.Controls)
		}
	}
	return report, nil
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/services"
	infracaps "github.com/remotedeck/remotedeck/internal/infrastructure/capabilities"
	"github.com/remotedeck/remotedeck/internal/infrastructure/persistence/file"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new workspace file",
	Long: `Create a workspace with one profile and one page. Prompts for the
profile name and grid size unless --no-interactive is given.`,
	Example: `  remotedeck init
  remotedeck init --workspace ./deck.json --profile Streaming --rows 3 --cols 5 --no-interactive`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("profile", "Default", "Name of the first profile")
	initCmd.Flags().Int("rows", services.DefaultGridRows, "Grid rows of the first page")
	initCmd.Flags().Int("cols", services.DefaultGridCols, "Grid columns of the first page")
	initCmd.Flags().Bool("force", false, "Overwrite an existing workspace")
	initCmd.Flags().Bool("no-interactive", false, "Disable interactive prompts")

	rootCmd.AddCommand(initCmd)
}

// InitOptions describes the workspace created by init.
type InitOptions struct {
	Path          string
	ProfileName   string
	Rows          int
	Cols          int
	Force         bool
	NoInteractive bool
}

func runInit(cmd *cobra.Command, _ []string) error {
	rc, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	opts := InitOptions{Path: rc.WorkspacePath}
	opts.ProfileName, _ = cmd.Flags().GetString("profile")
	opts.Rows, _ = cmd.Flags().GetInt("rows")
	opts.Cols, _ = cmd.Flags().GetInt("cols")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.NoInteractive, _ = cmd.Flags().GetBool("no-interactive")

	interactive := !opts.NoInteractive && infracaps.NewTerminalPrompter().IsInteractive()
	if interactive {
		if err := promptInitOptions(&opts); err != nil {
			return err
		}
	}

	if _, err := os.Stat(opts.Path); err == nil && !opts.Force {
		overwrite := false
		if interactive {
			err := huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", opts.Path)).
				Value(&overwrite).
				Run()
			if err != nil {
				return err
			}
		}
		if !overwrite {
			return fmt.Errorf("%s already exists (use --force to overwrite)", opts.Path)
		}
	}

	ws, err := buildInitialWorkspace(opts)
	if err != nil {
		return err
	}
	repo := file.NewWorkspaceRepository(opts.Path, nil, slog.Default())
	if err := repo.Save(cmd.Context(), ws); err != nil {
		return fmt.Errorf("failed to write workspace: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created workspace %s (profile %q, %dx%d grid)\n",
		opts.Path, opts.ProfileName, opts.Rows, opts.Cols)
	return nil
}

func promptInitOptions(opts *InitOptions) error {
	rows := strconv.Itoa(opts.Rows)
	cols := strconv.Itoa(opts.Cols)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Value(&opts.ProfileName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Grid rows").
				Value(&rows).
				Validate(validateGridInput),
			huh.NewInput().
				Title("Grid columns").
				Value(&cols).
				Validate(validateGridInput),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	opts.Rows, _ = strconv.Atoi(strings.TrimSpace(rows))
	opts.Cols, _ = strconv.Atoi(strings.TrimSpace(cols))
	return nil
}

func validateGridInput(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a number")
	}
	if n < services.MinGridSize || n > services.MaxGridSize {
		return fmt.Errorf("must be between %d and %d", services.MinGridSize, services.MaxGridSize)
	}
	return nil
}

// buildInitialWorkspace creates the workspace described by opts.
func buildInitialWorkspace(opts InitOptions) (*entities.Workspace, error) {
	name := strings.TrimSpace(opts.ProfileName)
	if name == "" {
		return nil, apperrors.NewValidationError("profile", "name required")
	}
	for field, n := range map[string]int{"rows": opts.Rows, "cols": opts.Cols} {
		if n < services.MinGridSize || n > services.MaxGridSize {
			return nil, apperrors.NewValidationError(field,
				fmt.Sprintf("must be between %d and %d", services.MinGridSize, services.MaxGridSize))
		}
	}

	ws := services.NewWorkspace()
	ws.Profiles[0].Name = name
	ws.Profiles[0].Pages[0].Grid = entities.Grid{Rows: opts.Rows, Cols: opts.Cols}
	return ws, nil
}

// Package file persists the workspace as a JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/repositories"
	"github.com/remotedeck/remotedeck/internal/domain/services"
)

// Ensure interface compliance
var _ repositories.WorkspaceRepository = (*WorkspaceRepository)(nil)

// DocumentValidator checks a raw workspace document before it is decoded.
type DocumentValidator interface {
	Validate(data []byte) error
}

// WorkspaceRepository reads and writes a single workspace file.
type WorkspaceRepository struct {
	path      string
	validator DocumentValidator
	logger    *slog.Logger
}

// NewWorkspaceRepository creates a repository for path. validator may be
// nil to skip schema checks.
func NewWorkspaceRepository(path string, validator DocumentValidator, logger *slog.Logger) *WorkspaceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkspaceRepository{path: path, validator: validator, logger: logger}
}

// Path returns the workspace file location.
func (r *WorkspaceRepository) Path() string {
	return r.path
}

// Load reads, validates and normalizes the workspace. Repairs made by
// normalization are logged; the repaired workspace is written back by the
// next save.
func (r *WorkspaceRepository) Load(_ context.Context) (*entities.Workspace, error) {
	//nolint:gosec // G304: path comes from configuration
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", repositories.ErrWorkspaceNotFound, r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}

	if r.validator != nil {
		if err := r.validator.Validate(data); err != nil {
			return nil, apperrors.NewConfigurationError("workspace", "invalid workspace file "+r.path, err)
		}
	}

	var ws entities.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, apperrors.NewConfigurationError("workspace", "failed to decode "+r.path, err)
	}

	for _, fix := range services.NormalizeWorkspace(&ws) {
		r.logger.Warn("workspace repaired on load", "entity_id", fix.EntityID, "fix", fix.Message)
	}
	return &ws, nil
}

// Save writes the workspace atomically: a temporary file in the same
// directory is renamed over the previous version.
func (r *WorkspaceRepository) Save(_ context.Context, ws *entities.Workspace) error {
	if ws.FormatVersion == "" {
		ws.FormatVersion = services.CurrentFormatVersion
	}
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workspace: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".workspace-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync workspace: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close workspace: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace workspace: %w", err)
	}
	return nil
}

// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"
	"errors"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
)

// ErrWorkspaceNotFound is returned by Load when nothing has been saved yet.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// WorkspaceRepository defines the interface for persisting the workspace.
type WorkspaceRepository interface {
	// Load retrieves the stored workspace. It returns ErrWorkspaceNotFound
	// when nothing has been saved yet.
	Load(ctx context.Context) (*entities.Workspace, error)

	// Save persists a workspace snapshot, replacing the stored one.
	Save(ctx context.Context, ws *entities.Workspace) error
}

// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/repositories"
)

// Ensure interface compliance
var _ repositories.WorkspaceRepository = (*WorkspaceRepository)(nil)

// SavedWorkspace is one write recorded by the repository.
type SavedWorkspace struct {
	Workspace *entities.Workspace
	SavedAt   time.Time
}

// WorkspaceRepository is an in-memory implementation of
// WorkspaceRepository. It backs --ephemeral runs and tests; every save is
// kept so callers can inspect what was written.
type WorkspaceRepository struct {
	history []SavedWorkspace
	saves   int
	mu      sync.RWMutex
}

// NewWorkspaceRepository creates an empty repository. With a non-nil
// initial workspace, Load returns a copy of it until the first save.
func NewWorkspaceRepository(initial *entities.Workspace) *WorkspaceRepository {
	r := &WorkspaceRepository{}
	if initial != nil {
		r.history = append(r.history, SavedWorkspace{Workspace: initial.Clone(), SavedAt: time.Now()})
	}
	return r
}

// Load returns a copy of the most recently saved workspace.
func (r *WorkspaceRepository) Load(_ context.Context) (*entities.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.history) == 0 {
		return nil, repositories.ErrWorkspaceNotFound
	}
	return r.history[len(r.history)-1].Workspace.Clone(), nil
}

// Save stores a copy of ws.
func (r *WorkspaceRepository) Save(_ context.Context, ws *entities.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, SavedWorkspace{Workspace: ws.Clone(), SavedAt: time.Now()})
	r.saves++
	return nil
}

// SaveCount returns how many times Save was called.
func (r *WorkspaceRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

// History returns up to limit recorded saves, newest first. A limit of
// zero returns all of them.
func (r *WorkspaceRepository) History(limit int) []SavedWorkspace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]SavedWorkspace, 0, len(r.history))
	for i := len(r.history) - 1; i >= 0; i-- {
		out = append(out, r.history[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

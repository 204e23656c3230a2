package file

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/repositories"
)

// DefaultSaveDebounce is the quiet period before a scheduled save runs.
const DefaultSaveDebounce = 300 * time.Millisecond

// Ensure interface compliance
var _ ports.SaveScheduler = (*DebouncedSaver)(nil)

// DebouncedSaver coalesces bursts of mutations into one write. Every
// ScheduleSave restarts the quiet period.
//
// ScheduleSave is called with the store lock held, so it only records the
// snapshot function. The snapshot is taken when the timer fires, outside
// mu.
type DebouncedSaver struct {
	repo   repositories.WorkspaceRepository
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending func() *entities.Workspace

	// writeMu keeps two writes from interleaving.
	writeMu sync.Mutex
}

// NewDebouncedSaver creates a saver writing to repo after delay. A zero
// delay uses DefaultSaveDebounce.
func NewDebouncedSaver(repo repositories.WorkspaceRepository, delay time.Duration, logger *slog.Logger) *DebouncedSaver {
	if delay <= 0 {
		delay = DefaultSaveDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DebouncedSaver{repo: repo, delay: delay, logger: logger}
}

// ScheduleSave records snapshot and (re)starts the quiet period.
func (s *DebouncedSaver) ScheduleSave(snapshot func() *entities.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = snapshot
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.fire)
		return
	}
	s.timer.Reset(s.delay)
}

// Pending reports whether a save is waiting for its quiet period.
func (s *DebouncedSaver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Flush cancels the timer and writes any pending save immediately.
func (s *DebouncedSaver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	return s.save(ctx)
}

func (s *DebouncedSaver) fire() {
	if err := s.save(context.Background()); err != nil {
		s.logger.Error("failed to save workspace", "error", err)
	}
}

func (s *DebouncedSaver) save(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	snapshot := s.pending
	s.pending = nil
	s.mu.Unlock()

	if snapshot == nil {
		return nil
	}
	if err := s.repo.Save(ctx, snapshot()); err != nil {
		s.mu.Lock()
		if s.pending == nil {
			s.pending = snapshot
		}
		s.mu.Unlock()
		return err
	}
	s.logger.Debug("workspace saved")
	return nil
}

package file

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/services"
	"github.com/remotedeck/remotedeck/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	*memory.WorkspaceRepository
	fail atomic.Bool
}

func (r *failingRepo) Save(ctx context.Context, ws *entities.Workspace) error {
	if r.fail.Load() {
		return errors.New("disk full")
	}
	return r.WorkspaceRepository.Save(ctx, ws)
}

func namedWorkspace(name string) func() *entities.Workspace {
	return func() *entities.Workspace {
		ws := services.NewWorkspace()
		ws.Profiles[0].Name = name
		return ws
	}
}

func TestDebouncedSaver_CoalescesBurst(t *testing.T) {
	repo := memory.NewWorkspaceRepository(nil)
	saver := NewDebouncedSaver(repo, 30*time.Millisecond, nil)

	for _, name := range []string{"a", "b", "c", "d"} {
		saver.ScheduleSave(namedWorkspace(name))
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, saver.Pending())

	require.Eventually(t, func() bool { return repo.SaveCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, repo.SaveCount())
	assert.False(t, saver.Pending())

	ws, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "d", ws.Profiles[0].Name)
}

func TestDebouncedSaver_Flush(t *testing.T) {
	repo := memory.NewWorkspaceRepository(nil)
	saver := NewDebouncedSaver(repo, time.Hour, nil)

	require.NoError(t, saver.Flush(context.Background()))
	assert.Zero(t, repo.SaveCount(), "nothing pending")

	saver.ScheduleSave(namedWorkspace("x"))
	require.NoError(t, saver.Flush(context.Background()))

	assert.Equal(t, 1, repo.SaveCount())
	assert.False(t, saver.Pending())
}

func TestDebouncedSaver_FailedSaveStaysPending(t *testing.T) {
	repo := &failingRepo{WorkspaceRepository: memory.NewWorkspaceRepository(nil)}
	repo.fail.Store(true)
	saver := NewDebouncedSaver(repo, time.Hour, nil)

	saver.ScheduleSave(namedWorkspace("x"))
	assert.Error(t, saver.Flush(context.Background()))
	assert.True(t, saver.Pending())

	repo.fail.Store(false)
	require.NoError(t, saver.Flush(context.Background()))
	assert.Equal(t, 1, repo.SaveCount())
}

func TestDebouncedSaver_DefaultDelay(t *testing.T) {
	saver := NewDebouncedSaver(memory.NewWorkspaceRepository(nil), 0, nil)
	assert.Equal(t, DefaultSaveDebounce, saver.delay)
}

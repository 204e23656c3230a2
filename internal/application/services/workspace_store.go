package services

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/services"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// Created describes an entity produced by an add or duplicate operation.
type Created struct {
	Type values.EntityKind `json:"type"`
	ID   string            `json:"id"`
}

// WorkspaceStore owns the live workspace and performs every structural
// mutation on it. Each operation validates fully before it mutates, then
// re-establishes the active selection and schedules a save.
//
// The lock serializes store operations only. Dispatch reads what it needs
// and releases the lock before calling drivers.
type WorkspaceStore struct {
	mu      sync.Mutex
	ws      *entities.Workspace
	saver   ports.SaveScheduler
	metrics ports.MetricsRecorder
	logger  *slog.Logger
}

// NewWorkspaceStore wraps an already normalized workspace. A nil
// workspace starts from the default one.
func NewWorkspaceStore(
	ws *entities.Workspace,
	saver ports.SaveScheduler,
	metrics ports.MetricsRecorder,
	logger *slog.Logger,
) *WorkspaceStore {
	if ws == nil {
		ws = services.NewWorkspace()
	}
	if logger == nil {
		logger = slog.Default()
	}
	services.HealSelection(ws)
	return &WorkspaceStore{ws: ws, saver: saver, metrics: metrics, logger: logger}
}

// Snapshot returns a deep copy of the workspace.
func (s *WorkspaceStore) Snapshot() *entities.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.Clone()
}

// View runs fn with read access to the live workspace. fn must not keep
// references past its return or mutate anything.
func (s *WorkspaceStore) View(fn func(ws *entities.Workspace)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ws)
}

// Selection returns the active profile and page.
func (s *WorkspaceStore) Selection() entities.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.Selection()
}

// mutate runs fn under the lock. fn must leave the workspace untouched
// when it returns an error.
func (s *WorkspaceStore) mutate(op string, fn func(ws *entities.Workspace) error) error {
	s.mu.Lock()
	err := fn(s.ws)
	if err == nil {
		services.HealSelection(s.ws)
		if s.saver != nil {
			s.saver.ScheduleSave(s.Snapshot)
		}
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.StoreMutation(op, err)
	}
	if err != nil {
		s.logger.Debug("workspace mutation rejected", "op", op, "error", err)
	}
	return err
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", entities.ErrNameRequired
	}
	return name, nil
}

// optionalName trims a name for an add operation; blank means "use the
// default".
func optionalName(name string) string {
	return strings.TrimSpace(name)
}

func findProfile(ws *entities.Workspace, id string) (*entities.Profile, error) {
	p, ok := ws.Profile(id)
	if !ok {
		return nil, entities.NewNotFound(values.KindProfile, id)
	}
	return p, nil
}

// findPageIn resolves a page that must belong to the given profile.
func findPageIn(ws *entities.Workspace, profileID, pageID string) (*entities.Profile, *entities.Page, error) {
	p, err := findProfile(ws, profileID)
	if err != nil {
		return nil, nil, err
	}
	pg, ok := p.Page(pageID)
	if !ok {
		return nil, nil, entities.NewNotFound(values.KindPage, pageID)
	}
	return p, pg, nil
}

func findPage(ws *entities.Workspace, id string) (*entities.Profile, *entities.Page, error) {
	p, pg, ok := ws.FindPage(id)
	if !ok {
		return nil, nil, entities.NewNotFound(values.KindPage, id)
	}
	return p, pg, nil
}

func findFolder(ws *entities.Workspace, id string) (*entities.Page, *entities.Folder, error) {
	_, pg, f, ok := ws.FindFolder(id)
	if !ok {
		return nil, nil, entities.NewNotFound(values.KindFolder, id)
	}
	return pg, f, nil
}

func findControl(ws *entities.Workspace, id string) (*entities.Page, *entities.Control, error) {
	_, pg, c, ok := ws.FindControl(id)
	if !ok {
		return nil, nil, entities.NewNotFound(values.KindElement, id)
	}
	return pg, c, nil
}

// AddProfile appends a profile holding one default page and makes it
// active. A blank name yields "Profile N".
func (s *WorkspaceStore) AddProfile(name string) (Created, error) {
	var out Created
	err := s.mutate("addProfile", func(ws *entities.Workspace) error {
		used := services.UsedIDs(ws)
		profileID := services.NextFreeID(used, services.PrefixProfile)
		p := services.NewProfile(profileID, optionalName(name), services.NextFreeID(used, services.PrefixPage))
		ws.Profiles = append(ws.Profiles, p)
		selectPage(ws, p.ID, p.Pages[0].ID)
		out = Created{Type: values.KindProfile, ID: p.ID}
		return nil
	})
	return out, err
}

// AddPage appends a default page to a profile. A blank name yields
// "Page N".
func (s *WorkspaceStore) AddPage(profileID, name string) (Created, error) {
	var out Created
	err := s.mutate("addPage", func(ws *entities.Workspace) error {
		p, err := findProfile(ws, profileID)
		if err != nil {
			return err
		}
		pg := services.NewPage(services.NextID(ws, services.PrefixPage), optionalName(name))
		p.Pages = append(p.Pages, pg)
		out = Created{Type: values.KindPage, ID: pg.ID}
		return nil
	})
	return out, err
}

// RenameProfile sets a profile's name.
func (s *WorkspaceStore) RenameProfile(id, name string) error {
	return s.mutate("renameProfile", func(ws *entities.Workspace) error {
		name, err := requireName(name)
		if err != nil {
			return err
		}
		p, err := findProfile(ws, id)
		if err != nil {
			return err
		}
		p.Name = name
		return nil
	})
}

// RenamePage sets a page's name.
func (s *WorkspaceStore) RenamePage(id, name string) error {
	return s.mutate("renamePage", func(ws *entities.Workspace) error {
		name, err := requireName(name)
		if err != nil {
			return err
		}
		_, pg, err := findPage(ws, id)
		if err != nil {
			return err
		}
		pg.Name = name
		return nil
	})
}

// DeleteProfile removes a profile with all of its pages. Deleting the last
// profile leaves a fresh default one behind.
func (s *WorkspaceStore) DeleteProfile(id string) error {
	return s.mutate("deleteProfile", func(ws *entities.Workspace) error {
		if !ws.RemoveProfile(id) {
			return entities.NewNotFound(values.KindProfile, id)
		}
		return nil
	})
}

// DeletePage removes a page with its folders, controls and placements.
func (s *WorkspaceStore) DeletePage(id string) error {
	return s.mutate("deletePage", func(ws *entities.Workspace) error {
		p, _, err := findPage(ws, id)
		if err != nil {
			return err
		}
		p.RemovePage(id)
		return nil
	})
}

// MovePage relocates a page, placements included, to the end of another
// profile.
func (s *WorkspaceStore) MovePage(pageID, fromProfileID, toProfileID string) error {
	return s.mutate("movePage", func(ws *entities.Workspace) error {
		from, pg, err := findPageIn(ws, fromProfileID, pageID)
		if err != nil {
			return err
		}
		to, err := findProfile(ws, toProfileID)
		if err != nil {
			return err
		}
		if from == to {
			return nil
		}
		from.RemovePage(pageID)
		to.Pages = append(to.Pages, pg)
		if ws.ActivePageID == pageID {
			ws.ActiveProfileID = to.ID
		}
		return nil
	})
}

// DuplicatePage deep-copies a page next to the original with fresh IDs
// throughout. The copy is named "<name> (copy)".
func (s *WorkspaceStore) DuplicatePage(pageID string) (Created, error) {
	var out Created
	err := s.mutate("duplicatePage", func(ws *entities.Workspace) error {
		p, src, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		dup := services.DuplicatePage(src, services.UsedIDs(ws))
		i := slices.Index(p.Pages, src)
		p.Pages = slices.Insert(p.Pages, i+1, dup)
		out = Created{Type: values.KindPage, ID: dup.ID}
		return nil
	})
	return out, err
}

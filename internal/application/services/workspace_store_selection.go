package services

import (
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// MaxHistory bounds the navigation history used by Back.
const MaxHistory = 32

// selectPage makes profileID/pageID active. A real change records the
// previous selection for Back and closes any open folder.
func selectPage(ws *entities.Workspace, profileID, pageID string) {
	prev := ws.Selection()
	next := entities.Selection{ProfileID: profileID, PageID: pageID}
	if prev == next {
		return
	}
	if prev.ProfileID != "" {
		h := append(ws.Navigation.History, prev)
		if len(h) > MaxHistory {
			h = h[len(h)-MaxHistory:]
		}
		ws.Navigation.History = h
	}
	ws.ActiveProfileID = profileID
	ws.ActivePageID = pageID
	ws.Navigation.ActiveFolderID = ""
}

// SetActiveProfile selects a profile and its first page.
func (s *WorkspaceStore) SetActiveProfile(profileID string) error {
	return s.mutate("setActiveProfile", func(ws *entities.Workspace) error {
		p, err := findProfile(ws, profileID)
		if err != nil {
			return err
		}
		selectPage(ws, p.ID, firstPageID(p))
		return nil
	})
}

// SetActivePage selects a profile and a page that must belong to it.
func (s *WorkspaceStore) SetActivePage(profileID, pageID string) error {
	return s.mutate("setActivePage", func(ws *entities.Workspace) error {
		p, pg, err := findPageIn(ws, profileID, pageID)
		if err != nil {
			return err
		}
		selectPage(ws, p.ID, pg.ID)
		return nil
	})
}

// SetActive is the navigation entry point. With a pageID the page must
// belong to the profile. Without one, the current page is kept when it
// already belongs to the profile, otherwise the profile's first page is
// selected.
func (s *WorkspaceStore) SetActive(profileID, pageID string) error {
	return s.mutate("setActive", func(ws *entities.Workspace) error {
		p, err := findProfile(ws, profileID)
		if err != nil {
			return err
		}
		if pageID != "" {
			pg, ok := p.Page(pageID)
			if !ok {
				return entities.NewValidation("pageId", "page "+pageID+" does not belong to profile "+profileID)
			}
			selectPage(ws, p.ID, pg.ID)
			return nil
		}
		if _, ok := p.Page(ws.ActivePageID); ok {
			selectPage(ws, p.ID, ws.ActivePageID)
			return nil
		}
		selectPage(ws, p.ID, firstPageID(p))
		return nil
	})
}

// SwitchPage activates a page wherever it lives.
func (s *WorkspaceStore) SwitchPage(pageID string) error {
	return s.mutate("switchPage", func(ws *entities.Workspace) error {
		p, pg, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		selectPage(ws, p.ID, pg.ID)
		return nil
	})
}

// OpenFolder marks a folder on the active page as open.
func (s *WorkspaceStore) OpenFolder(folderID string) error {
	return s.mutate("openFolder", func(ws *entities.Workspace) error {
		_, pg, ok := ws.ActivePage()
		if !ok {
			return entities.NewNotFound(values.KindPage, ws.ActivePageID)
		}
		if _, ok := pg.Folder(folderID); !ok {
			return entities.NewNotFound(values.KindFolder, folderID)
		}
		ws.Navigation.ActiveFolderID = folderID
		return nil
	})
}

// Back closes the open folder if there is one. Otherwise it returns to
// the most recent history entry that still resolves, discarding stale
// ones. It reports whether anything changed.
func (s *WorkspaceStore) Back() (bool, error) {
	changed := false
	err := s.mutate("back", func(ws *entities.Workspace) error {
		if ws.Navigation.ActiveFolderID != "" {
			ws.Navigation.ActiveFolderID = ""
			changed = true
			return nil
		}
		h := ws.Navigation.History
		for len(h) > 0 {
			prev := h[len(h)-1]
			h = h[:len(h)-1]
			p, ok := ws.Profile(prev.ProfileID)
			if !ok {
				continue
			}
			if _, ok := p.Page(prev.PageID); !ok {
				continue
			}
			ws.ActiveProfileID = prev.ProfileID
			ws.ActivePageID = prev.PageID
			changed = true
			break
		}
		ws.Navigation.History = h
		return nil
	})
	return changed, err
}

// NavigationState returns the open folder and the history depth.
func (s *WorkspaceStore) NavigationState() (activeFolderID string, historyLen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.Navigation.ActiveFolderID, len(s.ws.Navigation.History)
}

func firstPageID(p *entities.Profile) string {
	if len(p.Pages) == 0 {
		// HealSelection adds a default page after the mutation.
		return ""
	}
	return p.Pages[0].ID
}

package services

import (
	"slices"

	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/services"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// AddFolder appends a folder named "Folder N" to a page.
func (s *WorkspaceStore) AddFolder(profileID, pageID string) (Created, error) {
	var out Created
	err := s.mutate("addFolder", func(ws *entities.Workspace) error {
		_, pg, err := findPageIn(ws, profileID, pageID)
		if err != nil {
			return err
		}
		f := services.NewFolder(services.NextID(ws, services.PrefixFolder))
		pg.Folders = append(pg.Folders, f)
		out = Created{Type: values.KindFolder, ID: f.ID}
		return nil
	})
	return out, err
}

// AddButton appends an unplaced button to a page, optionally inside a
// folder on that page.
func (s *WorkspaceStore) AddButton(profileID, pageID, folderID string) (Created, error) {
	return s.addElement("addButton", values.ControlButton, profileID, pageID, folderID)
}

// AddFader appends an unplaced fader to a page, optionally inside a
// folder on that page.
func (s *WorkspaceStore) AddFader(profileID, pageID, folderID string) (Created, error) {
	return s.addElement("addFader", values.ControlFader, profileID, pageID, folderID)
}

func (s *WorkspaceStore) addElement(op string, t values.ControlType, profileID, pageID, folderID string) (Created, error) {
	var out Created
	err := s.mutate(op, func(ws *entities.Workspace) error {
		_, pg, err := findPageIn(ws, profileID, pageID)
		if err != nil {
			return err
		}
		if folderID != "" {
			if _, ok := pg.Folder(folderID); !ok {
				return entities.NewNotFound(values.KindFolder, folderID)
			}
		}
		c := services.NewControl(services.NextID(ws, t.IDPrefix()), t, folderID)
		pg.Controls = append(pg.Controls, c)
		out = Created{Type: values.KindElement, ID: c.ID}
		return nil
	})
	return out, err
}

// RenameFolder sets a folder's name.
func (s *WorkspaceStore) RenameFolder(id, name string) error {
	return s.mutate("renameFolder", func(ws *entities.Workspace) error {
		name, err := requireName(name)
		if err != nil {
			return err
		}
		_, f, err := findFolder(ws, id)
		if err != nil {
			return err
		}
		f.Name = name
		return nil
	})
}

// RenameElement sets a control's name.
func (s *WorkspaceStore) RenameElement(id, name string) error {
	return s.mutate("renameElement", func(ws *entities.Workspace) error {
		name, err := requireName(name)
		if err != nil {
			return err
		}
		_, c, err := findControl(ws, id)
		if err != nil {
			return err
		}
		c.Name = name
		return nil
	})
}

// DeleteFolder removes a folder. Its member controls stay on the page,
// placements included, with their folder reference cleared.
func (s *WorkspaceStore) DeleteFolder(id string) error {
	return s.mutate("deleteFolder", func(ws *entities.Workspace) error {
		pg, _, err := findFolder(ws, id)
		if err != nil {
			return err
		}
		for _, c := range pg.FolderMembers(id) {
			c.FolderID = ""
		}
		pg.RemoveFolder(id)
		if ws.Navigation.ActiveFolderID == id {
			ws.Navigation.ActiveFolderID = ""
		}
		return nil
	})
}

// DeleteElement removes a control and its placement.
func (s *WorkspaceStore) DeleteElement(id string) error {
	return s.mutate("deleteElement", func(ws *entities.Workspace) error {
		pg, _, err := findControl(ws, id)
		if err != nil {
			return err
		}
		pg.RemoveControl(id)
		return nil
	})
}

// MoveFolder relocates a folder and its member controls to another page.
// The members arrive unplaced since placements are page-local.
func (s *WorkspaceStore) MoveFolder(folderID, toProfileID, toPageID string) error {
	return s.mutate("moveFolder", func(ws *entities.Workspace) error {
		src, f, err := findFolder(ws, folderID)
		if err != nil {
			return err
		}
		_, dst, err := findPageIn(ws, toProfileID, toPageID)
		if err != nil {
			return err
		}
		if src == dst {
			return nil
		}
		members := src.FolderMembers(folderID)
		for _, c := range members {
			src.RemoveControl(c.ID)
		}
		src.RemoveFolder(folderID)
		dst.Folders = append(dst.Folders, f)
		dst.Controls = append(dst.Controls, members...)
		if ws.Navigation.ActiveFolderID == folderID {
			ws.Navigation.ActiveFolderID = ""
		}
		return nil
	})
}

// MoveElement relocates a control to a page and into targetFolderID on
// that page ("" for none). Moving to another page drops the placement;
// staying on the same page only changes the folder.
func (s *WorkspaceStore) MoveElement(elementID, toProfileID, toPageID, targetFolderID string) error {
	return s.mutate("moveElement", func(ws *entities.Workspace) error {
		src, c, err := findControl(ws, elementID)
		if err != nil {
			return err
		}
		_, dst, err := findPageIn(ws, toProfileID, toPageID)
		if err != nil {
			return err
		}
		if targetFolderID != "" {
			if _, ok := dst.Folder(targetFolderID); !ok {
				return entities.NewNotFound(values.KindFolder, targetFolderID)
			}
		}
		c.FolderID = targetFolderID
		if src != dst {
			src.RemoveControl(elementID)
			dst.Controls = append(dst.Controls, c)
		}
		return nil
	})
}

// DuplicateFolder copies a folder and its members onto the same page.
// The copied controls start unplaced.
func (s *WorkspaceStore) DuplicateFolder(folderID string) (Created, error) {
	var out Created
	err := s.mutate("duplicateFolder", func(ws *entities.Workspace) error {
		pg, f, err := findFolder(ws, folderID)
		if err != nil {
			return err
		}
		dup, members := services.DuplicateFolder(pg, f, services.UsedIDs(ws))
		i := slices.Index(pg.Folders, f)
		pg.Folders = slices.Insert(pg.Folders, i+1, dup)
		pg.Controls = append(pg.Controls, members...)
		out = Created{Type: values.KindFolder, ID: dup.ID}
		return nil
	})
	return out, err
}

// DuplicateElement copies a control onto the same page, unplaced.
func (s *WorkspaceStore) DuplicateElement(elementID string) (Created, error) {
	var out Created
	err := s.mutate("duplicateElement", func(ws *entities.Workspace) error {
		pg, c, err := findControl(ws, elementID)
		if err != nil {
			return err
		}
		dup := services.DuplicateControl(c, services.UsedIDs(ws))
		i := slices.Index(pg.Controls, c)
		pg.Controls = slices.Insert(pg.Controls, i+1, dup)
		out = Created{Type: values.KindElement, ID: dup.ID}
		return nil
	})
	return out, err
}

// SetActionBinding normalizes raw and stores it on a control. A binding
// rejected by normalization is not stored and the previous one is kept;
// the returned binding is nil in that case. A nil raw clears the binding.
func (s *WorkspaceStore) SetActionBinding(elementID string, raw map[string]any) (*actions.Binding, error) {
	var stored *actions.Binding
	err := s.mutate("setActionBinding", func(ws *entities.Workspace) error {
		_, c, err := findControl(ws, elementID)
		if err != nil {
			return err
		}
		if raw == nil {
			c.ActionBinding = nil
			return nil
		}
		b := actions.NormalizeBinding(raw)
		if b == nil {
			s.logger.Info("action binding rejected", "element_id", elementID)
			return nil
		}
		c.ActionBinding = b
		stored = b.Clone()
		return nil
	})
	return stored, err
}

// ResolveActiveControl returns a copy of a control on the active page.
func (s *WorkspaceStore) ResolveActiveControl(controlID string) (*entities.Control, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, pg, ok := s.ws.ActivePage()
	if !ok {
		return nil, false
	}
	c, ok := pg.Control(controlID)
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

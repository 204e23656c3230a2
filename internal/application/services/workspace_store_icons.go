package services

import (
	"fmt"
	"strings"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/services"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// AddIconAsset registers an icon descriptor. A blank id allocates
// "iconN"; an explicit id must be unused.
func (s *WorkspaceStore) AddIconAsset(id, file, mime string) (Created, error) {
	var out Created
	err := s.mutate("addIconAsset", func(ws *entities.Workspace) error {
		id, file, mime = strings.TrimSpace(id), strings.TrimSpace(file), strings.TrimSpace(mime)
		if file == "" {
			return entities.NewValidation("file", "file required")
		}
		used := services.UsedIDs(ws)
		if id == "" {
			id = services.NextFreeID(used, services.PrefixIcon)
		} else if used.Has(id) {
			return entities.NewValidation("id", fmt.Sprintf("id %s already in use", id))
		}
		if ws.Assets.Icons == nil {
			ws.Assets.Icons = map[string]entities.IconAsset{}
		}
		ws.Assets.Icons[id] = entities.IconAsset{ID: id, File: file, Mime: mime}
		out = Created{Type: values.KindIcon, ID: id}
		return nil
	})
	return out, err
}

// RemoveIconAsset deletes an icon and clears every reference to it. Image
// backgrounds that used it fall back to the default background.
func (s *WorkspaceStore) RemoveIconAsset(id string) error {
	return s.mutate("removeIconAsset", func(ws *entities.Workspace) error {
		if _, ok := ws.Icon(id); !ok {
			return entities.NewNotFound(values.KindIcon, id)
		}
		delete(ws.Assets.Icons, id)
		unref := func(ref *string) {
			if *ref == id {
				*ref = ""
			}
		}
		for _, p := range ws.Profiles {
			unref(&p.IconAssetID)
			for _, pg := range p.Pages {
				unref(&pg.IconAssetID)
				if pg.Background.Kind == entities.BackgroundImage && pg.Background.AssetID == id {
					pg.Background = entities.DefaultBackground()
				}
				for _, f := range pg.Folders {
					unref(&f.IconAssetID)
				}
				for _, c := range pg.Controls {
					unref(&c.IconAssetID)
					if c.FaderIconAssetIDs != nil {
						for i := range c.FaderIconAssetIDs {
							unref(&c.FaderIconAssetIDs[i])
						}
					}
				}
			}
		}
		return nil
	})
}

// checkIcon accepts "" (clear) or the id of an existing icon.
func checkIcon(ws *entities.Workspace, assetID string) error {
	if assetID == "" {
		return nil
	}
	if _, ok := ws.Icon(assetID); !ok {
		return entities.NewNotFound(values.KindIcon, assetID)
	}
	return nil
}

// SetProfileIcon sets or clears ("") a profile's icon.
func (s *WorkspaceStore) SetProfileIcon(profileID, assetID string) error {
	return s.mutate("setProfileIcon", func(ws *entities.Workspace) error {
		p, err := findProfile(ws, profileID)
		if err != nil {
			return err
		}
		if err := checkIcon(ws, assetID); err != nil {
			return err
		}
		p.IconAssetID = assetID
		return nil
	})
}

// SetPageIcon sets or clears ("") a page's icon.
func (s *WorkspaceStore) SetPageIcon(pageID, assetID string) error {
	return s.mutate("setPageIcon", func(ws *entities.Workspace) error {
		_, pg, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		if err := checkIcon(ws, assetID); err != nil {
			return err
		}
		pg.IconAssetID = assetID
		return nil
	})
}

// SetFolderIcon sets or clears ("") a folder's icon.
func (s *WorkspaceStore) SetFolderIcon(folderID, assetID string) error {
	return s.mutate("setFolderIcon", func(ws *entities.Workspace) error {
		_, f, err := findFolder(ws, folderID)
		if err != nil {
			return err
		}
		if err := checkIcon(ws, assetID); err != nil {
			return err
		}
		f.IconAssetID = assetID
		return nil
	})
}

// SetElementIcon sets or clears ("") a control's icon.
func (s *WorkspaceStore) SetElementIcon(elementID, assetID string) error {
	return s.mutate("setElementIcon", func(ws *entities.Workspace) error {
		_, c, err := findControl(ws, elementID)
		if err != nil {
			return err
		}
		if err := checkIcon(ws, assetID); err != nil {
			return err
		}
		c.IconAssetID = assetID
		return nil
	})
}

// SetFaderIcon sets or clears ("") one of a fader's icon slots.
func (s *WorkspaceStore) SetFaderIcon(elementID string, slot int, assetID string) error {
	return s.mutate("setFaderIcon", func(ws *entities.Workspace) error {
		_, c, err := findControl(ws, elementID)
		if err != nil {
			return err
		}
		if c.Type != values.ControlFader {
			return entities.NewValidation("type", elementID+" is not a fader")
		}
		if slot < 0 || slot >= entities.FaderIconSlots {
			return entities.NewValidation("slot", fmt.Sprintf("slot must be 0-%d, got %d", entities.FaderIconSlots-1, slot))
		}
		if err := checkIcon(ws, assetID); err != nil {
			return err
		}
		if c.FaderIconAssetIDs == nil {
			c.FaderIconAssetIDs = &[entities.FaderIconSlots]string{}
		}
		c.FaderIconAssetIDs[slot] = assetID
		return nil
	})
}

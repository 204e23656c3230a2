package services

import (
	"fmt"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// Fix describes one repair applied while normalizing a loaded workspace.
type Fix struct {
	EntityID string
	Message  string
}

func (f Fix) String() string {
	return f.EntityID + ": " + f.Message
}

// NormalizeWorkspace repairs a workspace read from storage so every
// structural invariant holds before the store starts serving it. Broken
// references are nulled or dropped rather than rejected. It returns the
// repairs made, in the order they were applied.
func NormalizeWorkspace(ws *entities.Workspace) []Fix {
	var fixes []Fix
	fix := func(id, format string, args ...any) {
		fixes = append(fixes, Fix{EntityID: id, Message: fmt.Sprintf(format, args...)})
	}

	if ws.FormatVersion == "" {
		ws.FormatVersion = CurrentFormatVersion
	}
	if ws.Assets.Icons == nil {
		ws.Assets.Icons = map[string]entities.IconAsset{}
	}
	for id, icon := range ws.Assets.Icons {
		if icon.ID != id {
			icon.ID = id
			ws.Assets.Icons[id] = icon
		}
	}
	iconRef := func(owner string, ref *string) {
		if *ref == "" {
			return
		}
		if _, ok := ws.Assets.Icons[*ref]; !ok {
			fix(owner, "dropped missing icon %s", *ref)
			*ref = ""
		}
	}

	seen := IDSet{}
	for id := range ws.Assets.Icons {
		seen.Add(id)
	}
	// Duplicate IDs are renamed as they are met; the first holder keeps it.
	// Fresh IDs are allocated against the full set so they collide with
	// nothing that comes later.
	all := UsedIDs(ws)
	unique := func(id *string, prefix string) {
		if *id == "" || seen.Has(*id) {
			old := *id
			*id = NextFreeID(all, prefix)
			fix(*id, "reassigned duplicate or empty id %q", old)
		}
		seen.Add(*id)
	}

	ws.Profiles = dropNil(ws.Profiles)
	for _, p := range ws.Profiles {
		unique(&p.ID, PrefixProfile)
		iconRef(p.ID, &p.IconAssetID)
		p.Pages = dropNil(p.Pages)
		for _, pg := range p.Pages {
			unique(&pg.ID, PrefixPage)
			normalizePage(pg, unique, iconRef, fix)
		}
	}

	if HealSelection(ws) {
		fix(ws.ActivePageID, "active selection repaired")
	}
	return fixes
}

func normalizePage(
	pg *entities.Page,
	unique func(*string, string),
	iconRef func(string, *string),
	fix func(string, string, ...any),
) {
	iconRef(pg.ID, &pg.IconAssetID)
	if r, c := ClampGridSize(pg.Grid.Rows), ClampGridSize(pg.Grid.Cols); r != pg.Grid.Rows || c != pg.Grid.Cols {
		fix(pg.ID, "grid %dx%d clamped to %dx%d", pg.Grid.Rows, pg.Grid.Cols, r, c)
		pg.Grid = entities.Grid{Rows: r, Cols: c}
	}
	switch pg.Background.Kind {
	case entities.BackgroundSolid:
	case entities.BackgroundImage:
		iconRef(pg.ID, &pg.Background.AssetID)
		if pg.Background.AssetID == "" {
			pg.Background = entities.DefaultBackground()
		}
	default:
		pg.Background = entities.DefaultBackground()
	}

	pg.Folders = dropNil(pg.Folders)
	for _, f := range pg.Folders {
		unique(&f.ID, PrefixFolder)
		iconRef(f.ID, &f.IconAssetID)
	}

	pg.Controls = dropNil(pg.Controls)
	for _, c := range pg.Controls {
		if c.Type.Validate() != nil {
			fix(c.ID, "unknown control type %q treated as button", c.Type)
			c.Type = values.ControlButton
		}
		unique(&c.ID, c.Type.IDPrefix())
		iconRef(c.ID, &c.IconAssetID)
		if c.FolderID != "" {
			if _, ok := pg.Folder(c.FolderID); !ok {
				fix(c.ID, "cleared orphan folder %s", c.FolderID)
				c.FolderID = ""
			}
		}
		if c.Type == values.ControlFader {
			if c.FaderIconAssetIDs == nil {
				c.FaderIconAssetIDs = &[entities.FaderIconSlots]string{}
			}
			for i := range c.FaderIconAssetIDs {
				iconRef(c.ID, &c.FaderIconAssetIDs[i])
			}
		} else {
			c.FaderIconAssetIDs = nil
		}
	}

	kept := make([]*entities.Placement, 0, len(pg.Placements))
	placed := IDSet{}
	for _, pl := range dropNil(pg.Placements) {
		ctrl, ok := pg.Control(pl.ElementID)
		switch {
		case !ok:
			fix(pl.ID, "dropped placement of missing element %s", pl.ElementID)
			continue
		case placed.Has(pl.ElementID):
			fix(pl.ID, "dropped second placement of %s", pl.ElementID)
			continue
		}
		if ctrl.Type == values.ControlFader {
			pl.ColSpan = 1
		}
		candidate := &entities.Page{Grid: pg.Grid, Placements: kept}
		if err := CheckPlacement(candidate, RectOf(pl), ""); err != nil {
			fix(pl.ID, "dropped: %v", err)
			continue
		}
		unique(&pl.ID, PrefixPlacement)
		placed.Add(pl.ElementID)
		kept = append(kept, pl)
	}
	pg.Placements = kept
}

func dropNil[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

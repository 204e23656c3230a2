// Package entities contains the workspace aggregate: profiles, pages and
// everything placed on a page. These are pure domain types with no
// infrastructure dependencies.
package entities

import (
	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// Workspace is the aggregate root. It is loaded once at startup and
// mutated in place by the workspace store.
//
// Invariants Enforced (by the store after every mutation):
// - Every entity ID is unique across the whole workspace
// - Folder and placement references point at entities on the same page
// - Placements fit the page grid and never overlap
// - ActiveProfileID names a profile and ActivePageID a page inside it
type Workspace struct {
	FormatVersion   string     `json:"formatVersion,omitempty"`
	Profiles        []*Profile `json:"profiles"`
	ActiveProfileID string     `json:"activeProfileId"`
	ActivePageID    string     `json:"activePageId"`
	Assets          Assets     `json:"assets"`
	LastSession     Selection  `json:"lastSession"`
	Navigation      Navigation `json:"-"`
}

// Selection identifies the active profile and page.
type Selection struct {
	ProfileID string `json:"activeProfileId"`
	PageID    string `json:"activePageId"`
}

// Navigation is transient browsing state driven by dispatched actions:
// the open folder and the history used by "back". It is not persisted.
type Navigation struct {
	ActiveFolderID string      `json:"activeFolderId,omitempty"`
	History        []Selection `json:"history,omitempty"`
}

// Assets holds global resources referenced by id from the profile tree.
type Assets struct {
	Icons map[string]IconAsset `json:"icons"`
}

// IconAsset is a stored icon descriptor. It is resolved to a fetchable URL
// only at the query boundary.
type IconAsset struct {
	ID   string `json:"id"`
	File string `json:"file"`
	Mime string `json:"mime"`
}

// Profile is a named, ordered collection of pages.
type Profile struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	IconAssetID string  `json:"iconAssetId,omitempty"`
	Pages       []*Page `json:"pages"`
}

// Grid is the size of a page in cells.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Page is a grid-addressable canvas of controls.
type Page struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	IconAssetID string       `json:"iconAssetId,omitempty"`
	Grid        Grid         `json:"grid"`
	ShowGrid    bool         `json:"showGrid"`
	Style       PageStyle    `json:"style"`
	Background  Background   `json:"background"`
	Controls    []*Control   `json:"controls"`
	Folders     []*Folder    `json:"folders"`
	Placements  []*Placement `json:"placements"`
}

// Folder is a grouping label. Controls point at it through FolderID; the
// folder does not own them.
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IconAssetID string `json:"iconAssetId,omitempty"`
}

// FaderIconSlots is the number of icon slots a fader carries.
const FaderIconSlots = 4

// Control is a bindable button or fader ("element").
type Control struct {
	ID                string                  `json:"id"`
	Type              values.ControlType      `json:"type"`
	Name              string                  `json:"name"`
	IconAssetID       string                  `json:"iconAssetId,omitempty"`
	FolderID          string                  `json:"folderId,omitempty"`
	StyleOverride     *ControlStyle           `json:"styleOverride,omitempty"`
	ActionBinding     *actions.Binding        `json:"actionBinding,omitempty"`
	FaderIconAssetIDs *[FaderIconSlots]string `json:"faderIconAssetIds,omitempty"`
}

// Placement is a control's footprint on its page grid. Coordinates are
// 1-based.
type Placement struct {
	ID        string `json:"id"`
	ElementID string `json:"elementId"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	RowSpan   int    `json:"rowSpan"`
	ColSpan   int    `json:"colSpan"`
}

// Selection returns the active profile and page.
func (w *Workspace) Selection() Selection {
	return Selection{ProfileID: w.ActiveProfileID, PageID: w.ActivePageID}
}

// Profile returns the profile with the given id.
func (w *Workspace) Profile(id string) (*Profile, bool) {
	i := w.profileIndex(id)
	if i < 0 {
		return nil, false
	}
	return w.Profiles[i], true
}

func (w *Workspace) profileIndex(id string) int {
	for i, p := range w.Profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// RemoveProfile deletes a profile and everything under it.
func (w *Workspace) RemoveProfile(id string) bool {
	i := w.profileIndex(id)
	if i < 0 {
		return false
	}
	w.Profiles = append(w.Profiles[:i], w.Profiles[i+1:]...)
	return true
}

// FindPage locates a page anywhere in the workspace.
func (w *Workspace) FindPage(id string) (*Profile, *Page, bool) {
	for _, p := range w.Profiles {
		if pg, ok := p.Page(id); ok {
			return p, pg, true
		}
	}
	return nil, nil, false
}

// FindFolder locates a folder anywhere in the workspace.
func (w *Workspace) FindFolder(id string) (*Profile, *Page, *Folder, bool) {
	for _, p := range w.Profiles {
		for _, pg := range p.Pages {
			if f, ok := pg.Folder(id); ok {
				return p, pg, f, true
			}
		}
	}
	return nil, nil, nil, false
}

// FindControl locates a control anywhere in the workspace.
func (w *Workspace) FindControl(id string) (*Profile, *Page, *Control, bool) {
	for _, p := range w.Profiles {
		for _, pg := range p.Pages {
			if c, ok := pg.Control(id); ok {
				return p, pg, c, true
			}
		}
	}
	return nil, nil, nil, false
}

// FindPlacement locates a placement anywhere in the workspace.
func (w *Workspace) FindPlacement(id string) (*Page, *Placement, bool) {
	for _, p := range w.Profiles {
		for _, pg := range p.Pages {
			if pl, ok := pg.Placement(id); ok {
				return pg, pl, true
			}
		}
	}
	return nil, nil, false
}

// ActivePage returns the active page if the selection resolves.
func (w *Workspace) ActivePage() (*Profile, *Page, bool) {
	p, ok := w.Profile(w.ActiveProfileID)
	if !ok {
		return nil, nil, false
	}
	pg, ok := p.Page(w.ActivePageID)
	if !ok {
		return p, nil, false
	}
	return p, pg, true
}

// Icon returns the icon asset with the given id.
func (w *Workspace) Icon(id string) (IconAsset, bool) {
	if w.Assets.Icons == nil {
		return IconAsset{}, false
	}
	a, ok := w.Assets.Icons[id]
	return a, ok
}

// Page returns the page with the given id.
func (p *Profile) Page(id string) (*Page, bool) {
	i := p.pageIndex(id)
	if i < 0 {
		return nil, false
	}
	return p.Pages[i], true
}

func (p *Profile) pageIndex(id string) int {
	for i, pg := range p.Pages {
		if pg.ID == id {
			return i
		}
	}
	return -1
}

// RemovePage detaches a page from the profile.
func (p *Profile) RemovePage(id string) bool {
	i := p.pageIndex(id)
	if i < 0 {
		return false
	}
	p.Pages = append(p.Pages[:i], p.Pages[i+1:]...)
	return true
}

// Folder returns the folder with the given id.
func (pg *Page) Folder(id string) (*Folder, bool) {
	for _, f := range pg.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Control returns the control with the given id.
func (pg *Page) Control(id string) (*Control, bool) {
	for _, c := range pg.Controls {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Placement returns the placement with the given id.
func (pg *Page) Placement(id string) (*Placement, bool) {
	for _, pl := range pg.Placements {
		if pl.ID == id {
			return pl, true
		}
	}
	return nil, false
}

// PlacementFor returns the placement of a control, if it is placed.
func (pg *Page) PlacementFor(elementID string) (*Placement, bool) {
	for _, pl := range pg.Placements {
		if pl.ElementID == elementID {
			return pl, true
		}
	}
	return nil, false
}

// RemoveFolder detaches a folder; member controls keep existing.
func (pg *Page) RemoveFolder(id string) bool {
	for i, f := range pg.Folders {
		if f.ID == id {
			pg.Folders = append(pg.Folders[:i], pg.Folders[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveControl detaches a control and drops its placement.
func (pg *Page) RemoveControl(id string) bool {
	for i, c := range pg.Controls {
		if c.ID == id {
			pg.Controls = append(pg.Controls[:i], pg.Controls[i+1:]...)
			pg.RemovePlacementFor(id)
			return true
		}
	}
	return false
}

// RemovePlacement drops a placement by id.
func (pg *Page) RemovePlacement(id string) bool {
	for i, pl := range pg.Placements {
		if pl.ID == id {
			pg.Placements = append(pg.Placements[:i], pg.Placements[i+1:]...)
			return true
		}
	}
	return false
}

// RemovePlacementFor drops the placement of a control, if any.
func (pg *Page) RemovePlacementFor(elementID string) bool {
	for i, pl := range pg.Placements {
		if pl.ElementID == elementID {
			pg.Placements = append(pg.Placements[:i], pg.Placements[i+1:]...)
			return true
		}
	}
	return false
}

// FolderMembers returns the controls whose FolderID points at folderID.
func (pg *Page) FolderMembers(folderID string) []*Control {
	var out []*Control
	for _, c := range pg.Controls {
		if c.FolderID == folderID {
			out = append(out, c)
		}
	}
	return out
}

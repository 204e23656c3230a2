package services

import (
	"fmt"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// Default grid of a new page.
const (
	DefaultGridRows = 4
	DefaultGridCols = 3
)

// CurrentFormatVersion is written into every saved workspace.
const CurrentFormatVersion = "1.0.0"

// defaultName builds "<label> <N>" from the numeric suffix of id.
func defaultName(label, id string) string {
	if n := NumericSuffix(id); n > 0 {
		return fmt.Sprintf("%s %d", label, n)
	}
	return label
}

// NewPage returns an empty page with the default grid.
func NewPage(id, name string) *entities.Page {
	if name == "" {
		name = defaultName("Page", id)
	}
	return &entities.Page{
		ID:         id,
		Name:       name,
		Grid:       entities.Grid{Rows: DefaultGridRows, Cols: DefaultGridCols},
		ShowGrid:   true,
		Background: entities.DefaultBackground(),
		Controls:   []*entities.Control{},
		Folders:    []*entities.Folder{},
		Placements: []*entities.Placement{},
	}
}

// NewProfile returns a profile holding a single default page.
func NewProfile(id, name, pageID string) *entities.Profile {
	if name == "" {
		name = defaultName("Profile", id)
	}
	return &entities.Profile{ID: id, Name: name, Pages: []*entities.Page{NewPage(pageID, "")}}
}

// NewFolder returns a folder with a default name.
func NewFolder(id string) *entities.Folder {
	return &entities.Folder{ID: id, Name: defaultName("Folder", id)}
}

// NewControl returns an unbound, unplaced control of type t.
func NewControl(id string, t values.ControlType, folderID string) *entities.Control {
	c := &entities.Control{ID: id, Type: t, Name: defaultName(t.Label(), id), FolderID: folderID}
	if t == values.ControlFader {
		c.FaderIconAssetIDs = &[entities.FaderIconSlots]string{}
	}
	return c
}

// NewWorkspace returns a workspace with one profile and one page, both
// active.
func NewWorkspace() *entities.Workspace {
	ws := &entities.Workspace{
		FormatVersion: CurrentFormatVersion,
		Profiles:      []*entities.Profile{NewProfile("profile1", "Default", "page1")},
		Assets:        entities.Assets{Icons: map[string]entities.IconAsset{}},
	}
	HealSelection(ws)
	return ws
}

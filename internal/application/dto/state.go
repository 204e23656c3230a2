// Package dto contains data transfer objects for the control surface:
// the state query view, client commands and sync events.
package dto

import (
	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// StateView is the answer to a state query: the active selection, the
// active page in a placement-ready shape, a navigation index of every
// profile, and the icon assets resolved to URLs.
type StateView struct {
	ActiveProfileID string         `json:"activeProfileId"`
	ActivePageID    string         `json:"activePageId"`
	ActiveFolderID  string         `json:"activeFolderId,omitempty"`
	ActiveProfile   ProfileSummary `json:"activeProfile"`
	ActivePage      PageSummary    `json:"activePage"`
	Page            PageView       `json:"page"`
	Profiles        []ProfileIndex `json:"profiles"`
	Assets          AssetsView     `json:"assets"`
}

// ProfileSummary identifies a profile.
type ProfileSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IconAssetID string `json:"iconAssetId,omitempty"`
}

// PageSummary identifies a page.
type PageSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IconAssetID string `json:"iconAssetId,omitempty"`
}

// ProfileIndex is one profile in the navigation index.
type ProfileIndex struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	IconAssetID string        `json:"iconAssetId,omitempty"`
	Pages       []PageSummary `json:"pages"`
}

// PageView is the active page with everything needed to render it.
type PageView struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	IconAssetID string              `json:"iconAssetId,omitempty"`
	Grid        entities.Grid       `json:"grid"`
	ShowGrid    bool                `json:"showGrid"`
	Background  entities.Background `json:"background"`
	Folders     []FolderView        `json:"folders"`
	Controls    []ControlView       `json:"controls"`
	Placements  []PlacementView     `json:"placements"`
}

// FolderView is a folder on the active page.
type FolderView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IconAssetID string `json:"iconAssetId,omitempty"`
}

// ControlView is a control on the active page. Style is the effective
// style after the page defaults and the control's override are merged.
type ControlView struct {
	ID                string                 `json:"id"`
	Type              values.ControlType     `json:"type"`
	Name              string                 `json:"name"`
	IconAssetID       string                 `json:"iconAssetId,omitempty"`
	FolderID          string                 `json:"folderId,omitempty"`
	Style             *entities.ControlStyle `json:"style,omitempty"`
	ActionBinding     *actions.Binding       `json:"actionBinding"`
	FaderIconAssetIDs []string               `json:"faderIconAssetIds,omitempty"`
}

// PlacementView is a control's footprint on the active page.
type PlacementView struct {
	ElementID string `json:"elementId"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	RowSpan   int    `json:"rowSpan"`
	ColSpan   int    `json:"colSpan"`
}

// AssetsView holds resolved icons keyed by asset id.
type AssetsView struct {
	Icons map[string]IconView `json:"icons"`
}

// IconView is an icon asset resolved to a fetchable URL.
type IconView struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Mime string `json:"mime"`
}

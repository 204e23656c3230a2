package services

import (
	"fmt"
	"strings"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/services"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// AddPlacement places a control on its page. Zero spans use the default
// for the control type; a fader is always one column wide.
func (s *WorkspaceStore) AddPlacement(elementID string, row, col, rowSpan, colSpan int) (Created, error) {
	var out Created
	err := s.mutate("addPlacement", func(ws *entities.Workspace) error {
		pg, c, err := findControl(ws, elementID)
		if err != nil {
			return err
		}
		if pl, placed := pg.PlacementFor(elementID); placed {
			return entities.NewValidation("placement", fmt.Sprintf("%s is already placed as %s", elementID, pl.ID))
		}
		defRows, defCols := services.DefaultSpan(c.Type, pg.Grid)
		if rowSpan == 0 {
			rowSpan = defRows
		}
		if colSpan == 0 || c.Type == values.ControlFader {
			colSpan = defCols
		}
		r := services.Rect{Row: row, Col: col, RowSpan: rowSpan, ColSpan: colSpan}
		if err := services.CheckPlacement(pg, r, ""); err != nil {
			return err
		}
		pl := &entities.Placement{
			ID:        services.NextID(ws, services.PrefixPlacement),
			ElementID: elementID,
			Row:       r.Row,
			Col:       r.Col,
			RowSpan:   r.RowSpan,
			ColSpan:   r.ColSpan,
		}
		pg.Placements = append(pg.Placements, pl)
		out = Created{Type: values.KindPlacement, ID: pl.ID}
		return nil
	})
	return out, err
}

// UpdatePlacementSpan resizes a placement in place.
func (s *WorkspaceStore) UpdatePlacementSpan(placementID string, rowSpan, colSpan int) error {
	return s.mutate("updatePlacementSpan", func(ws *entities.Workspace) error {
		pg, pl, err := findPlacement(ws, placementID)
		if err != nil {
			return err
		}
		if c, ok := pg.Control(pl.ElementID); ok && c.Type == values.ControlFader {
			colSpan = 1
		}
		r := services.Rect{Row: pl.Row, Col: pl.Col, RowSpan: rowSpan, ColSpan: colSpan}
		if err := services.CheckPlacement(pg, r, pl.ID); err != nil {
			return err
		}
		pl.RowSpan, pl.ColSpan = r.RowSpan, r.ColSpan
		return nil
	})
}

// MovePlacement moves a placement to a new origin, keeping its span.
func (s *WorkspaceStore) MovePlacement(placementID string, row, col int) error {
	return s.mutate("movePlacement", func(ws *entities.Workspace) error {
		pg, pl, err := findPlacement(ws, placementID)
		if err != nil {
			return err
		}
		r := services.Rect{Row: row, Col: col, RowSpan: pl.RowSpan, ColSpan: pl.ColSpan}
		if err := services.CheckPlacement(pg, r, pl.ID); err != nil {
			return err
		}
		pl.Row, pl.Col = row, col
		return nil
	})
}

// RemovePlacement unplaces a control. The control itself is kept.
func (s *WorkspaceStore) RemovePlacement(placementID string) error {
	return s.mutate("removePlacement", func(ws *entities.Workspace) error {
		pg, _, err := findPlacement(ws, placementID)
		if err != nil {
			return err
		}
		pg.RemovePlacement(placementID)
		return nil
	})
}

func findPlacement(ws *entities.Workspace, id string) (*entities.Page, *entities.Placement, error) {
	pg, pl, ok := ws.FindPlacement(id)
	if !ok {
		return nil, nil, entities.NewNotFound(values.KindPlacement, id)
	}
	return pg, pl, nil
}

// SetPageGrid resizes a page grid, clamping each dimension to [1, 24].
// Placements that no longer fit are removed and their controls become
// unplaced. It returns the IDs of the removed placements.
func (s *WorkspaceStore) SetPageGrid(pageID string, rows, cols int) ([]string, error) {
	var dropped []string
	err := s.mutate("setPageGrid", func(ws *entities.Workspace) error {
		_, pg, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		grid := entities.Grid{Rows: services.ClampGridSize(rows), Cols: services.ClampGridSize(cols)}
		kept := make([]*entities.Placement, 0, len(pg.Placements))
		for _, pl := range pg.Placements {
			if services.CheckBounds(grid, services.RectOf(pl)) != nil {
				dropped = append(dropped, pl.ID)
				continue
			}
			kept = append(kept, pl)
		}
		pg.Grid = grid
		pg.Placements = kept
		return nil
	})
	return dropped, err
}

// SetPageShowGrid toggles grid lines on a page.
func (s *WorkspaceStore) SetPageShowGrid(pageID string, show bool) error {
	return s.mutate("setPageShowGrid", func(ws *entities.Workspace) error {
		_, pg, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		pg.ShowGrid = show
		return nil
	})
}

// SetPageStyle replaces the page default style for one control type.
func (s *WorkspaceStore) SetPageStyle(pageID string, t values.ControlType, style entities.ControlStyle) error {
	return s.mutate("setPageStyle", func(ws *entities.Workspace) error {
		if err := t.Validate(); err != nil {
			return entities.NewValidation("type", err.Error())
		}
		_, pg, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		style = entities.ControlStyle{}.Merge(&style)
		if t == values.ControlFader {
			pg.Style.Fader = style
		} else {
			pg.Style.Button = style
		}
		return nil
	})
}

// SetPageBackgroundSolid gives a page a solid color background.
func (s *WorkspaceStore) SetPageBackgroundSolid(pageID, color string) error {
	return s.mutate("setPageBackgroundSolid", func(ws *entities.Workspace) error {
		color = strings.TrimSpace(color)
		if color == "" {
			return entities.NewValidation("color", "color required")
		}
		_, pg, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		pg.Background = entities.Background{Kind: entities.BackgroundSolid, Color: color}
		return nil
	})
}

// SetPageBackgroundImage gives a page an image background from an icon
// asset.
func (s *WorkspaceStore) SetPageBackgroundImage(pageID, assetID string) error {
	return s.mutate("setPageBackgroundImage", func(ws *entities.Workspace) error {
		_, pg, err := findPage(ws, pageID)
		if err != nil {
			return err
		}
		if _, ok := ws.Icon(assetID); !ok {
			return entities.NewNotFound(values.KindIcon, assetID)
		}
		pg.Background = entities.Background{Kind: entities.BackgroundImage, AssetID: assetID}
		return nil
	})
}

// SetControlStyleOverride replaces a control's style patch. A nil or
// empty style clears it.
func (s *WorkspaceStore) SetControlStyleOverride(elementID string, style *entities.ControlStyle) error {
	return s.mutate("setControlStyleOverride", func(ws *entities.Workspace) error {
		_, c, err := findControl(ws, elementID)
		if err != nil {
			return err
		}
		if style == nil || style.IsZero() {
			c.StyleOverride = nil
			return nil
		}
		st := entities.ControlStyle{}.Merge(style)
		c.StyleOverride = &st
		return nil
	})
}

package services

import (
	"fmt"

	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// Grid size limits.
const (
	MinGridSize = 1
	MaxGridSize = 24

	// MaxFaderRowSpan is the default height of a fader.
	MaxFaderRowSpan = 4
)

// Rect is a candidate footprint on a page grid, 1-based.
type Rect struct {
	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// RectOf returns the footprint of an existing placement.
func RectOf(pl *entities.Placement) Rect {
	return Rect{Row: pl.Row, Col: pl.Col, RowSpan: pl.RowSpan, ColSpan: pl.ColSpan}
}

// Overlaps reports whether two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	rowsOverlap := r.Row < o.Row+o.RowSpan && r.Row+r.RowSpan > o.Row
	colsOverlap := r.Col < o.Col+o.ColSpan && r.Col+r.ColSpan > o.Col
	return rowsOverlap && colsOverlap
}

// ClampGridSize clamps a grid dimension into [MinGridSize, MaxGridSize].
func ClampGridSize(n int) int {
	if n < MinGridSize {
		return MinGridSize
	}
	if n > MaxGridSize {
		return MaxGridSize
	}
	return n
}

// DefaultSpan returns the initial footprint size for a control type. A
// fader covers up to MaxFaderRowSpan rows, never more than the grid has.
func DefaultSpan(t values.ControlType, grid entities.Grid) (rowSpan, colSpan int) {
	if t == values.ControlFader {
		return min(MaxFaderRowSpan, grid.Rows), 1
	}
	return 1, 1
}

// CheckBounds verifies that r lies inside the grid.
func CheckBounds(grid entities.Grid, r Rect) error {
	if r.RowSpan < 1 || r.ColSpan < 1 {
		return entities.NewValidation("placement", fmt.Sprintf("span must be at least 1x1, got %dx%d", r.RowSpan, r.ColSpan))
	}
	if r.Row < 1 || r.Col < 1 {
		return entities.NewValidation("placement", fmt.Sprintf("position must be at least 1,1, got %d,%d", r.Row, r.Col))
	}
	if r.Row+r.RowSpan-1 > grid.Rows || r.Col+r.ColSpan-1 > grid.Cols {
		return entities.NewValidation("placement", fmt.Sprintf(
			"rows %d-%d, cols %d-%d exceed %dx%d grid",
			r.Row, r.Row+r.RowSpan-1, r.Col, r.Col+r.ColSpan-1, grid.Rows, grid.Cols))
	}
	return nil
}

// CheckPlacement decides whether r may occupy page. excludeID names a
// placement to ignore, used when an existing placement is resized or
// moved.
func CheckPlacement(page *entities.Page, r Rect, excludeID string) error {
	if err := CheckBounds(page.Grid, r); err != nil {
		return err
	}
	for _, other := range page.Placements {
		if other.ID == excludeID {
			continue
		}
		if r.Overlaps(RectOf(other)) {
			return entities.NewValidation("placement", fmt.Sprintf("overlaps %s at %d,%d", other.ElementID, other.Row, other.Col))
		}
	}
	return nil
}

package entities

import (
	"encoding/json"

	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// ControlStyle is a set of visual attributes. Every field is optional so
// the same type serves as page default and as a partial per-control patch.
type ControlStyle struct {
	Background string `json:"background,omitempty"`
	Foreground string `json:"foreground,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	Radius     int    `json:"radius,omitempty"`
	ShowLabel  *bool  `json:"showLabel,omitempty"`
}

// Merge returns s with every attribute set in patch applied on top.
func (s ControlStyle) Merge(patch *ControlStyle) ControlStyle {
	if patch == nil {
		return s
	}
	if patch.Background != "" {
		s.Background = patch.Background
	}
	if patch.Foreground != "" {
		s.Foreground = patch.Foreground
	}
	if patch.FontSize != 0 {
		s.FontSize = patch.FontSize
	}
	if patch.Radius != 0 {
		s.Radius = patch.Radius
	}
	if patch.ShowLabel != nil {
		v := *patch.ShowLabel
		s.ShowLabel = &v
	}
	return s
}

// IsZero reports whether no attribute is set.
func (s ControlStyle) IsZero() bool {
	return s.Background == "" && s.Foreground == "" && s.FontSize == 0 && s.Radius == 0 && s.ShowLabel == nil
}

// PageStyle holds per-control-type visual defaults for a page.
type PageStyle struct {
	Button ControlStyle `json:"button"`
	Fader  ControlStyle `json:"fader"`
}

// For returns the defaults that apply to a control type.
func (ps PageStyle) For(t values.ControlType) ControlStyle {
	if t == values.ControlFader {
		return ps.Fader
	}
	return ps.Button
}

// BackgroundKind is the kind of page background.
type BackgroundKind string

const (
	BackgroundSolid BackgroundKind = "solid"
	BackgroundImage BackgroundKind = "image"
)

// Background is a solid color or an image asset behind the grid.
type Background struct {
	Kind    BackgroundKind `json:"type"`
	Color   string         `json:"color,omitempty"`
	AssetID string         `json:"assetId,omitempty"`
}

// DefaultBackground is used for new pages.
func DefaultBackground() Background {
	return Background{Kind: BackgroundSolid, Color: "#000000"}
}

// EffectiveStyle resolves the style a control renders with on its page.
func (c *Control) EffectiveStyle(page *Page) ControlStyle {
	return page.Style.For(c.Type).Merge(c.StyleOverride)
}

// UnmarshalJSON decodes a control, dropping an action binding that no
// longer passes normalization instead of failing the whole document.
func (c *Control) UnmarshalJSON(data []byte) error {
	type plain Control
	var w struct {
		plain
		ActionBinding json.RawMessage `json:"actionBinding,omitempty"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Control(w.plain)
	c.ActionBinding = nil
	if len(w.ActionBinding) > 0 && string(w.ActionBinding) != "null" {
		if b, err := actions.ParseBinding(w.ActionBinding); err == nil {
			c.ActionBinding = b
		}
	}
	return nil
}

package values

import "fmt"

// EntityKind names a category of workspace entity. It is used in error
// messages and as the prefix for generated identifiers.
type EntityKind string

const (
	KindProfile   EntityKind = "profile"
	KindPage      EntityKind = "page"
	KindFolder    EntityKind = "folder"
	KindElement   EntityKind = "element"
	KindPlacement EntityKind = "placement"
	KindIcon      EntityKind = "icon"
)

// String returns the kind name.
func (k EntityKind) String() string {
	return string(k)
}

// ControlType is the type of a bindable element on a page.
type ControlType string

const (
	// ControlButton is a momentary press control.
	ControlButton ControlType = "button"
	// ControlFader is a vertical slider spanning several rows.
	ControlFader ControlType = "fader"
)

// Validate returns an error if the control type is unknown.
func (c ControlType) Validate() error {
	switch c {
	case ControlButton, ControlFader:
		return nil
	default:
		return fmt.Errorf("invalid control type: %q (must be button or fader)", string(c))
	}
}

// IDPrefix returns the prefix used when allocating element IDs of this type.
func (c ControlType) IDPrefix() string {
	return string(c)
}

// Label returns the human-readable name used for default element names.
func (c ControlType) Label() string {
	switch c {
	case ControlFader:
		return "Fader"
	default:
		return "Button"
	}
}

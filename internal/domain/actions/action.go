// Package actions defines the closed set of executable action kinds a
// control can be bound to, and the normalization that decides whether an
// untrusted action description may enter the stored workspace.
//
// Normalization runs once, when a binding is accepted. Everything stored in
// a workspace is therefore already canonical, and dispatch never has to
// re-check field ranges.
package actions

import (
	"encoding/json"
	"fmt"
)

// Type is the discriminator of an Action.
type Type string

const (
	TypeHotkey        Type = "hotkey"
	TypeMidiCC        Type = "midiCc"
	TypeMidiNote      Type = "midiNote"
	TypeDelay         Type = "delay"
	TypePasteText     Type = "pasteText"
	TypeTypeText      Type = "typeText"
	TypeMediaKey      Type = "mediaKey"
	TypeOpenURL       Type = "openUrl"
	TypeOpenApp       Type = "openApp"
	TypeSwitchPage    Type = "switchPage"
	TypeSwitchProfile Type = "switchProfile"
	TypeOpenFolder    Type = "openFolder"
	TypeBack          Type = "back"
)

// Action is one executable step. The set of implementations is closed:
// only the types in this package satisfy it.
type Action interface {
	Type() Type
	wire() wireAction
}

// NoteMode controls whether a MIDI note is released immediately or held.
type NoteMode string

const (
	NoteTap  NoteMode = "tap"
	NoteHold NoteMode = "hold"
)

// MediaKeyName is one of the supported transport/volume keys.
type MediaKeyName string

const (
	MediaVolUp     MediaKeyName = "volUp"
	MediaVolDown   MediaKeyName = "volDown"
	MediaVolMute   MediaKeyName = "volMute"
	MediaPlayPause MediaKeyName = "playPause"
	MediaNext      MediaKeyName = "next"
	MediaPrev      MediaKeyName = "prev"
)

// Hotkey sends a key combination such as "Ctrl+Shift+A".
type Hotkey struct {
	Keys string
}

// MidiCC sends a control change message.
type MidiCC struct {
	Channel int
	CC      int
}

// MidiNote sends a note on, followed by note off after DurationMs in tap mode.
type MidiNote struct {
	Channel    int
	Note       int
	Mode       NoteMode
	DurationMs int
}

// Delay pauses a macro.
type Delay struct {
	Ms int
}

// PasteText places Text on the clipboard and pastes it.
type PasteText struct {
	Text       string
	EnterAfter bool
}

// TypeText types Text key by key.
type TypeText struct {
	Text       string
	EnterAfter bool
}

// MediaKey presses a media key.
type MediaKey struct {
	Key MediaKeyName
}

// OpenURL hands an http(s) URL to the OS default handler.
type OpenURL struct {
	URL string
}

// OpenApp launches Target with Args.
type OpenApp struct {
	Target string
	Args   []string
}

// SwitchPage navigates to a page. An empty PageID is a no-op at dispatch.
type SwitchPage struct {
	PageID string
}

// SwitchProfile navigates to a profile.
type SwitchProfile struct {
	ProfileID string
}

// OpenFolder opens a folder on the active page.
type OpenFolder struct {
	FolderID string
}

// Back returns to the previous navigation state.
type Back struct{}

func (Hotkey) Type() Type        { return TypeHotkey }
func (MidiCC) Type() Type        { return TypeMidiCC }
func (MidiNote) Type() Type      { return TypeMidiNote }
func (Delay) Type() Type         { return TypeDelay }
func (PasteText) Type() Type     { return TypePasteText }
func (TypeText) Type() Type      { return TypeTypeText }
func (MediaKey) Type() Type      { return TypeMediaKey }
func (OpenURL) Type() Type       { return TypeOpenURL }
func (OpenApp) Type() Type       { return TypeOpenApp }
func (SwitchPage) Type() Type    { return TypeSwitchPage }
func (SwitchProfile) Type() Type { return TypeSwitchProfile }
func (OpenFolder) Type() Type    { return TypeOpenFolder }
func (Back) Type() Type          { return TypeBack }

// wireAction is the JSON shape shared by every action type. Only the
// fields belonging to the action's type are set.
type wireAction struct {
	Type       Type          `json:"type"`
	Keys       *string       `json:"keys,omitempty"`
	Channel    *int          `json:"channel,omitempty"`
	CC         *int          `json:"cc,omitempty"`
	Note       *int          `json:"note,omitempty"`
	Mode       *NoteMode     `json:"mode,omitempty"`
	DurationMs *int          `json:"durationMs,omitempty"`
	Ms         *int          `json:"ms,omitempty"`
	Text       *string       `json:"text,omitempty"`
	EnterAfter *bool         `json:"enterAfter,omitempty"`
	Key        *MediaKeyName `json:"key,omitempty"`
	URL        *string       `json:"url,omitempty"`
	Target     *string       `json:"target,omitempty"`
	Args       *[]string     `json:"args,omitempty"`
	PageID     *string       `json:"pageId,omitempty"`
	ProfileID  *string       `json:"profileId,omitempty"`
	FolderID   *string       `json:"folderId,omitempty"`
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a Hotkey) wire() wireAction { return wireAction{Type: TypeHotkey, Keys: &a.Keys} }
func (a MidiCC) wire() wireAction {
	return wireAction{Type: TypeMidiCC, Channel: &a.Channel, CC: &a.CC}
}
func (a MidiNote) wire() wireAction {
	return wireAction{Type: TypeMidiNote, Channel: &a.Channel, Note: &a.Note, Mode: &a.Mode, DurationMs: &a.DurationMs}
}
func (a Delay) wire() wireAction { return wireAction{Type: TypeDelay, Ms: &a.Ms} }
func (a PasteText) wire() wireAction {
	return wireAction{Type: TypePasteText, Text: &a.Text, EnterAfter: &a.EnterAfter}
}
func (a TypeText) wire() wireAction {
	return wireAction{Type: TypeTypeText, Text: &a.Text, EnterAfter: &a.EnterAfter}
}
func (a MediaKey) wire() wireAction { return wireAction{Type: TypeMediaKey, Key: &a.Key} }
func (a OpenURL) wire() wireAction  { return wireAction{Type: TypeOpenURL, URL: &a.URL} }
func (a OpenApp) wire() wireAction {
	args := a.Args
	if args == nil {
		args = []string{}
	}
	return wireAction{Type: TypeOpenApp, Target: &a.Target, Args: &args}
}
func (a SwitchPage) wire() wireAction    { return wireAction{Type: TypeSwitchPage, PageID: ref(a.PageID)} }
func (a SwitchProfile) wire() wireAction { return wireAction{Type: TypeSwitchProfile, ProfileID: ref(a.ProfileID)} }
func (a OpenFolder) wire() wireAction    { return wireAction{Type: TypeOpenFolder, FolderID: ref(a.FolderID)} }
func (Back) wire() wireAction            { return wireAction{Type: TypeBack} }

// Marshal encodes an action in its canonical JSON form.
func Marshal(a Action) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("cannot marshal nil action")
	}
	return json.Marshal(a.wire())
}

// Unmarshal decodes and normalizes a JSON action. It returns
// ErrRejected when the action does not survive normalization.
func Unmarshal(data []byte) (Action, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid action JSON: %w", err)
	}
	a := Normalize(raw)
	if a == nil {
		return nil, ErrRejected
	}
	return a, nil
}

// Clone returns a copy of a that shares no mutable state with it.
func Clone(a Action) Action {
	if app, ok := a.(OpenApp); ok {
		app.Args = append([]string(nil), app.Args...)
		return app
	}
	return a
}

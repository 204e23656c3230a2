package capabilities

import (
	"net/url"

	"github.com/remotedeck/remotedeck/internal/domain/actions"
)

// Required returns the capability an action needs before it may reach a
// driver. Actions that only touch the workspace (navigation, delay) need
// none and report false.
func Required(a actions.Action) (Capability, bool) {
	switch a := a.(type) {
	case actions.Hotkey:
		return Capability{Kind: KindKeyboard, Pattern: "hotkey"}, true
	case actions.PasteText:
		return Capability{Kind: KindKeyboard, Pattern: "paste"}, true
	case actions.TypeText:
		return Capability{Kind: KindKeyboard, Pattern: "type"}, true
	case actions.MediaKey:
		return Capability{Kind: KindMedia, Pattern: string(a.Key)}, true
	case actions.MidiCC:
		return Capability{Kind: KindMIDI, Pattern: "cc"}, true
	case actions.MidiNote:
		return Capability{Kind: KindMIDI, Pattern: "note"}, true
	case actions.OpenURL:
		host := ""
		if u, err := url.Parse(a.URL); err == nil {
			host = u.Hostname()
		}
		return Capability{Kind: KindNetwork, Pattern: host}, true
	case actions.OpenApp:
		return Capability{Kind: KindExec, Pattern: a.Target}, true
	default:
		return Capability{}, false
	}
}

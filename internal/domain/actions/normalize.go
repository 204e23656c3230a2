package actions

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ErrRejected is returned when an action or binding fails normalization.
var ErrRejected = errors.New("action rejected by normalization")

// Field ranges and defaults applied during normalization.
const (
	MinChannel        = 1
	MaxChannel        = 16
	MinDataByte       = 0
	MaxDataByte       = 127
	MinNoteDurationMs = 10
	MaxNoteDurationMs = 10000
	MinDelayMs        = 0
	MaxDelayMs        = 60000

	DefaultChannel        = 1
	DefaultCC             = 0
	DefaultNote           = 60
	DefaultNoteDurationMs = 100
	DefaultDelayMs        = 100
)

var mediaKeys = map[MediaKeyName]bool{
	MediaVolUp:     true,
	MediaVolDown:   true,
	MediaVolMute:   true,
	MediaPlayPause: true,
	MediaNext:      true,
	MediaPrev:      true,
}

type normalizer func(raw map[string]any) Action

// normalizers is the closed table of accepted action types. A type that
// is not listed here is rejected.
var normalizers = map[Type]normalizer{
	TypeHotkey:        normalizeHotkey,
	TypeMidiCC:        normalizeMidiCC,
	TypeMidiNote:      normalizeMidiNote,
	TypeDelay:         normalizeDelay,
	TypePasteText:     func(raw map[string]any) Action { return normalizeText(raw, false) },
	TypeTypeText:      func(raw map[string]any) Action { return normalizeText(raw, true) },
	TypeMediaKey:      normalizeMediaKey,
	TypeOpenURL:       normalizeOpenURL,
	TypeOpenApp:       normalizeOpenApp,
	TypeSwitchPage:    func(raw map[string]any) Action { return SwitchPage{PageID: refField(raw, "pageId")} },
	TypeSwitchProfile: func(raw map[string]any) Action { return SwitchProfile{ProfileID: refField(raw, "profileId")} },
	TypeOpenFolder:    func(raw map[string]any) Action { return OpenFolder{FolderID: refField(raw, "folderId")} },
	TypeBack:          func(map[string]any) Action { return Back{} },
}

// Normalize turns an untrusted, decoded JSON action into its canonical
// form. It returns nil when the action must be rejected.
func Normalize(raw map[string]any) Action {
	if raw == nil {
		return nil
	}
	t, ok := raw["type"].(string)
	if !ok {
		return nil
	}
	fn, ok := normalizers[Type(t)]
	if !ok {
		return nil
	}
	return fn(raw)
}

func normalizeHotkey(raw map[string]any) Action {
	keys := strings.TrimSpace(stringField(raw, "keys"))
	if keys == "" {
		return nil
	}
	return Hotkey{Keys: keys}
}

func normalizeMidiCC(raw map[string]any) Action {
	return MidiCC{
		Channel: intField(raw, "channel", DefaultChannel, MinChannel, MaxChannel),
		CC:      intField(raw, "cc", DefaultCC, MinDataByte, MaxDataByte),
	}
}

func normalizeMidiNote(raw map[string]any) Action {
	mode := NoteMode(stringField(raw, "mode"))
	if mode != NoteHold {
		mode = NoteTap
	}
	return MidiNote{
		Channel:    intField(raw, "channel", DefaultChannel, MinChannel, MaxChannel),
		Note:       intField(raw, "note", DefaultNote, MinDataByte, MaxDataByte),
		Mode:       mode,
		DurationMs: intField(raw, "durationMs", DefaultNoteDurationMs, MinNoteDurationMs, MaxNoteDurationMs),
	}
}

func normalizeDelay(raw map[string]any) Action {
	return Delay{Ms: intField(raw, "ms", DefaultDelayMs, MinDelayMs, MaxDelayMs)}
}

func normalizeText(raw map[string]any, typed bool) Action {
	text := stringField(raw, "text")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	enter, _ := raw["enterAfter"].(bool)
	if typed {
		return TypeText{Text: text, EnterAfter: enter}
	}
	return PasteText{Text: text, EnterAfter: enter}
}

func normalizeMediaKey(raw map[string]any) Action {
	key := MediaKeyName(stringField(raw, "key"))
	if !mediaKeys[key] {
		key = MediaPlayPause
	}
	return MediaKey{Key: key}
}

func normalizeOpenURL(raw map[string]any) Action {
	u := strings.TrimSpace(stringField(raw, "url"))
	if !IsNetworkURL(u) {
		return nil
	}
	return OpenURL{URL: u}
}

func normalizeOpenApp(raw map[string]any) Action {
	target := strings.TrimSpace(stringField(raw, "target"))
	if target == "" {
		return nil
	}
	args := []string{}
	if list, ok := raw["args"].([]any); ok {
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				args = append(args, s)
			}
		}
	}
	return OpenApp{Target: target, Args: args}
}

// IsNetworkURL reports whether s is an absolute http or https URL with a
// host. Any other scheme (file:, javascript:, custom protocol handlers)
// must never reach the OS opener.
func IsNetworkURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// refField returns a trimmed reference id, or "" for null and blanks.
func refField(raw map[string]any, key string) string {
	return strings.TrimSpace(stringField(raw, key))
}

// intField reads a numeric field, rounds it to an integer and clamps it
// into [lo, hi]. Missing or non-numeric values yield def.
func intField(raw map[string]any, key string, def, lo, hi int) int {
	f, ok := toFloat(raw[key])
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	n := math.Round(f)
	if n < float64(lo) {
		return lo
	}
	if n > float64(hi) {
		return hi
	}
	return int(n)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

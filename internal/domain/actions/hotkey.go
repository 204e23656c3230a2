package actions

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier is a keyboard modifier. Its numeric value is its position in
// the canonical order.
type Modifier int

const (
	ModCtrl Modifier = iota
	ModAlt
	ModShift
	ModWin
)

var modifierNames = [...]string{"Ctrl", "Alt", "Shift", "Win"}

// String returns the canonical name of the modifier.
func (m Modifier) String() string {
	if m < ModCtrl || m > ModWin {
		return "Unknown"
	}
	return modifierNames[m]
}

var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"win":     ModWin,
	"super":   ModWin,
	"meta":    ModWin,
	"cmd":     ModWin,
	"command": ModWin,
}

// KeyCombo is a parsed hotkey: a deduplicated modifier set and exactly one
// non-modifier key.
type KeyCombo struct {
	Modifiers []Modifier
	Key       string
}

// String renders the combo canonically, e.g. "Ctrl+Shift+A".
func (k KeyCombo) String() string {
	parts := make([]string, 0, len(k.Modifiers)+1)
	for _, m := range k.Modifiers {
		parts = append(parts, m.String())
	}
	parts = append(parts, k.Key)
	return strings.Join(parts, "+")
}

// ParseHotkey parses a "+"-separated key combination. Modifiers may repeat
// and appear in any order; the result lists them as Ctrl, Alt, Shift, Win.
// The non-modifier key must be a single letter or digit, or F1 to F24.
func ParseHotkey(s string) (KeyCombo, error) {
	var (
		seen [len(modifierNames)]bool
		keys []string
	)
	for _, token := range strings.Split(s, "+") {
		token = strings.TrimSpace(token)
		if token == "" {
			return KeyCombo{}, fmt.Errorf("hotkey %q: empty key", s)
		}
		if m, ok := modifierAliases[strings.ToLower(token)]; ok {
			seen[m] = true
			continue
		}
		key, ok := canonicalKey(token)
		if !ok {
			return KeyCombo{}, fmt.Errorf("hotkey %q: unsupported key %q", s, token)
		}
		keys = append(keys, key)
	}
	if len(keys) != 1 {
		return KeyCombo{}, fmt.Errorf("hotkey %q: need exactly one non-modifier key, got %d", s, len(keys))
	}
	combo := KeyCombo{Key: keys[0]}
	for m, ok := range seen {
		if ok {
			combo.Modifiers = append(combo.Modifiers, Modifier(m))
		}
	}
	return combo, nil
}

func canonicalKey(token string) (string, bool) {
	if len(token) == 1 {
		c := token[0]
		switch {
		case c >= 'a' && c <= 'z':
			return string(c - 'a' + 'A'), true
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return token, true
		}
		return "", false
	}
	if token[0] == 'f' || token[0] == 'F' {
		n, err := strconv.Atoi(token[1:])
		if err == nil && n >= 1 && n <= 24 && token[1] != '0' {
			return "F" + strconv.Itoa(n), true
		}
	}
	return "", false
}

// Package capabilities scopes what dispatched actions may do on the host.
// Every driver call is described by a Capability and checked against the
// grants configured by the operator.
package capabilities

import "strings"

// Capability kinds understood by the dispatcher.
const (
	KindExec     = "exec"     // launch a program (openApp)
	KindNetwork  = "network"  // hand a URL to the OS opener (openUrl)
	KindKeyboard = "keyboard" // inject keystrokes or text
	KindMedia    = "media"    // press a media key
	KindMIDI     = "midi"     // send MIDI messages
)

var (
	// Shell interpreters that allow arbitrary command execution
	dangerousShells = []string{
		"bash", "sh", "zsh", "fish", "/bin/bash", "/bin/sh",
		"cmd", "cmd.exe", "powershell", "powershell.exe", "pwsh",
	}

	// Script interpreters that can execute arbitrary code via flags (-c, -e, etc.)
	// Matches base + versioned variants (python3, python3.11, etc.)
	dangerousInterpreters = []string{
		"python", "perl", "ruby", "node", "nodejs",
		"php", "lua", "osascript", "wscript", "cscript",
	}
)

// RiskLevel represents the security risk level of a capability.
type RiskLevel int

const (
	// RiskLevelLow represents minimal security risk (specific, narrow permissions).
	RiskLevelLow RiskLevel = iota
	// RiskLevelMedium represents moderate security risk (network access, program launch).
	RiskLevelMedium
	// RiskLevelHigh represents high security risk (broad permissions, arbitrary code execution).
	RiskLevelHigh
)

// String returns a human-readable representation of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLevelLow:
		return "low"
	case RiskLevelMedium:
		return "medium"
	case RiskLevelHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Capability represents a permission requirement or grant.
// This is a pure value object in the domain.
type Capability struct {
	Kind    string // exec, network, keyboard, media, midi
	Pattern string // e.g., "obs", "*.example.com", "*"
}

// Parse reads the "kind:pattern" form used in configuration. A bare kind
// grants everything of that kind.
func Parse(s string) (Capability, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Capability{}, false
	}
	kind, pattern, found := strings.Cut(s, ":")
	if !found {
		pattern = "*"
	}
	kind = strings.TrimSpace(kind)
	pattern = strings.TrimSpace(pattern)
	if kind == "" || pattern == "" {
		return Capability{}, false
	}
	return Capability{Kind: kind, Pattern: pattern}, true
}

// Equals checks if two capabilities are equal (value object equality).
func (c Capability) Equals(other Capability) bool {
	return c.Kind == other.Kind && c.Pattern == other.Pattern
}

// String returns a human-readable representation of the capability.
func (c Capability) String() string {
	return c.Kind + ":" + c.Pattern
}

// IsEmpty returns true if this is a zero-value capability.
func (c Capability) IsEmpty() bool {
	return c.Kind == "" && c.Pattern == ""
}

// IsBroad returns true if this capability pattern is overly permissive.
func (c Capability) IsBroad() bool {
	switch c.Kind {
	case KindExec:
		if c.Pattern == "*" {
			return true
		}
		// Shell or interpreter without a specific script
		return matchesAny(c.Pattern, dangerousShells) || matchesInterpreter(c.Pattern)

	case KindNetwork:
		return c.Pattern == "*"

	default:
		return false
	}
}

// RiskLevel returns the security risk level of this capability.
func (c Capability) RiskLevel() RiskLevel {
	if c.IsBroad() {
		return RiskLevelHigh
	}
	if c.Kind == KindNetwork || c.Kind == KindExec || c.Kind == KindKeyboard {
		return RiskLevelMedium
	}
	return RiskLevelLow
}

// RiskDescription returns a human-readable explanation of the security risk.
func (c Capability) RiskDescription() string {
	switch c.Kind {
	case KindExec:
		if c.Pattern == "*" {
			return "Controls can launch any program"
		}
		if matchesAny(c.Pattern, dangerousShells) {
			return "Controls can execute arbitrary shell commands"
		}
		if matchesInterpreter(c.Pattern) {
			return "Controls can execute arbitrary code via " + extractInterpreterName(c.Pattern) + " interpreter"
		}
		return "Controls can launch: " + c.Pattern

	case KindNetwork:
		if c.Pattern == "*" {
			return "Controls can open any web address"
		}
		return "Controls can open web addresses on: " + c.Pattern

	case KindKeyboard:
		return "Controls can type into the focused window"

	case KindMedia:
		return "Controls can press media keys"

	case KindMIDI:
		return "Controls can send MIDI messages"

	default:
		return "Controls require capability: " + c.String()
	}
}

// matchesAny checks if pattern exactly matches any string in the list
func matchesAny(pattern string, list []string) bool {
	for _, item := range list {
		if pattern == item {
			return true
		}
	}
	return false
}

// matchesInterpreter checks if pattern is a dangerous interpreter (base or versioned)
func matchesInterpreter(pattern string) bool {
	for _, base := range dangerousInterpreters {
		if isInterpreterVariant(pattern, base) {
			return true
		}
	}
	return false
}

// extractInterpreterName returns the base interpreter name from a pattern
// e.g., "python3.11" -> "python"
func extractInterpreterName(pattern string) string {
	for i, ch := range pattern {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')) {
			return pattern[:i]
		}
	}
	return pattern
}

// isInterpreterVariant checks if a pattern matches an interpreter base name or its versioned variants.
//
// Matches:
//   - Exact: "python"
//   - Versioned: "python3", "python3.11", "python2.7"
//
// Does NOT match:
//   - Unrelated: "pythonista", "python-config"
func isInterpreterVariant(pattern, baseInterpreter string) bool {
	if pattern == baseInterpreter {
		return true
	}
	if !strings.HasPrefix(pattern, baseInterpreter) {
		return false
	}
	suffix := pattern[len(baseInterpreter):]
	first := suffix[0]
	return (first >= '0' && first <= '9') || first == '.'
}

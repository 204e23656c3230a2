package capabilities

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
)

// TerminalPrompter asks the operator to confirm risky grants.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if stdin is a terminal rather than a pipe or file.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ConfirmGrant asks whether c should be granted. It defaults to no.
func (p *TerminalPrompter) ConfirmGrant(c capabilities.Capability) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().
		Title("Grant " + c.String() + "?").
		Description(Describe(c) + "\n" + c.RiskDescription() + " (risk: " + c.RiskLevel().String() + ")").
		Affirmative("Grant").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// Describe returns a human-readable description of a capability.
func Describe(c capabilities.Capability) string {
	switch c.Kind {
	case capabilities.KindExec:
		if c.Pattern == "*" {
			return "Launch any program"
		}
		return fmt.Sprintf("Launch programs: %s", c.Pattern)
	case capabilities.KindNetwork:
		if c.Pattern == "*" {
			return "Open any web address"
		}
		if strings.HasPrefix(c.Pattern, "*.") {
			return fmt.Sprintf("Open web addresses under %s", strings.TrimPrefix(c.Pattern, "*."))
		}
		return fmt.Sprintf("Open web addresses on %s", c.Pattern)
	case capabilities.KindKeyboard:
		return "Send hotkeys and text to the focused window"
	case capabilities.KindMedia:
		return "Press media keys"
	case capabilities.KindMIDI:
		return "Send MIDI messages"
	default:
		return fmt.Sprintf("%s: %s", c.Kind, c.Pattern)
	}
}

// FormatNonInteractiveError explains how to grant broad capabilities
// without a terminal.
func FormatNonInteractiveError(broad capabilities.Grant, grantsPath string) error {
	var msg strings.Builder
	msg.WriteString("broad capabilities need confirmation (running in non-interactive mode)\n\n")
	for _, c := range broad {
		fmt.Fprintf(&msg, "  - %s: %s\n", c.String(), c.RiskDescription())
	}
	msg.WriteString("\nTo grant them:\n")
	msg.WriteString("  1. Run interactively and confirm when prompted\n")
	msg.WriteString("  2. Pass --yes\n")
	fmt.Fprintf(&msg, "  3. Edit %s\n", grantsPath)
	return fmt.Errorf("%s", msg.String())
}

package drivers

import (
	"context"
	"errors"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
)

// ErrHelperNotConfigured is returned when no keystroke helper path is set.
var ErrHelperNotConfigured = errors.New("keystroke helper not configured")

var (
	_ ports.KeystrokeInjector = (*KeystrokeHelper)(nil)
	_ ports.TextInjector      = (*KeystrokeHelper)(nil)
	_ ports.MediaKeySender    = (*KeystrokeHelper)(nil)
)

// KeystrokeHelper drives the external injection process. Each action is
// one invocation:
//
//	<helper> hotkey Ctrl+Shift+A
//	<helper> type|paste [--enter] -- <text>
//	<helper> media playPause
//
// A non-zero exit is reported as a CommandError.
type KeystrokeHelper struct {
	runner CommandRunner
	path   string
}

// NewKeystrokeHelper creates the driver. An empty path makes every call
// fail with ErrHelperNotConfigured.
func NewKeystrokeHelper(runner CommandRunner, path string) *KeystrokeHelper {
	return &KeystrokeHelper{runner: runner, path: path}
}

func (k *KeystrokeHelper) run(ctx context.Context, args ...string) error {
	if k.path == "" {
		return ErrHelperNotConfigured
	}
	return k.runner.Run(ctx, k.path, args...)
}

// SendCombo implements ports.KeystrokeInjector.
func (k *KeystrokeHelper) SendCombo(ctx context.Context, combo actions.KeyCombo) error {
	return k.run(ctx, "hotkey", combo.String())
}

// TypeText implements ports.TextInjector.
func (k *KeystrokeHelper) TypeText(ctx context.Context, text string, enterAfter bool) error {
	return k.run(ctx, textArgs("type", text, enterAfter)...)
}

// PasteText implements ports.TextInjector.
func (k *KeystrokeHelper) PasteText(ctx context.Context, text string, enterAfter bool) error {
	return k.run(ctx, textArgs("paste", text, enterAfter)...)
}

// SendMediaKey implements ports.MediaKeySender.
func (k *KeystrokeHelper) SendMediaKey(ctx context.Context, key actions.MediaKeyName) error {
	return k.run(ctx, "media", string(key))
}

func textArgs(verb, text string, enterAfter bool) []string {
	args := []string{verb}
	if enterAfter {
		args = append(args, "--enter")
	}
	// "--" keeps text that starts with a dash from being read as a flag.
	return append(args, "--", text)
}

// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/remotedeck/remotedeck/internal/application/dto"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// ErrNoMIDIPort is returned by a MIDIOutput that has no port to write to.
var ErrNoMIDIPort = errors.New("no MIDI output port available")

// KeystrokeInjector hands canonical key combinations to the external
// injection process.
type KeystrokeInjector interface {
	SendCombo(ctx context.Context, combo actions.KeyCombo) error
}

// TextInjector types or pastes text into the focused window.
type TextInjector interface {
	TypeText(ctx context.Context, text string, enterAfter bool) error
	PasteText(ctx context.Context, text string, enterAfter bool) error
}

// MediaKeySender presses a media transport or volume key.
type MediaKeySender interface {
	SendMediaKey(ctx context.Context, key actions.MediaKeyName) error
}

// URLOpener hands a validated http(s) URL to the OS default handler.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// AppLauncher starts a program with arguments.
type AppLauncher interface {
	Launch(ctx context.Context, target string, args []string) error
}

// MIDIOutput writes raw MIDI messages. It returns ErrNoMIDIPort when no
// output port is available.
type MIDIOutput interface {
	Send(ctx context.Context, msg []byte) error
}

// Sleeper waits for a duration or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Drivers bundles the side-effect ports the dispatcher executes through.
// A nil driver makes its actions fail with a logged error.
type Drivers struct {
	Keys  KeystrokeInjector
	Text  TextInjector
	Media MediaKeySender
	URLs  URLOpener
	Apps  AppLauncher
	MIDI  MIDIOutput
	Sleep Sleeper
}

// CapabilityChecker decides whether a driver call is allowed.
type CapabilityChecker interface {
	Check(required capabilities.Capability) error
}

// EventPublisher pushes sync events to every connected listener.
type EventPublisher interface {
	Publish(event dto.Event)
}

// IconResolver turns a stored icon descriptor into a fetchable URL.
type IconResolver interface {
	IconURL(asset entities.IconAsset) string
}

// SaveScheduler receives a notification after every workspace mutation.
// snapshot returns a consistent copy to write when the save runs. It is
// called with the store lock held, so it must not call snapshot itself.
type SaveScheduler interface {
	ScheduleSave(snapshot func() *entities.Workspace)
}

// MetricsRecorder counts dispatch steps and store mutations.
type MetricsRecorder interface {
	DispatchStep(action actions.Type, result string)
	StoreMutation(op string, err error)
}

// Dispatch step results reported to MetricsRecorder.
const (
	ResultOK      = string(values.StatusOK)
	ResultFailed  = string(values.StatusFailed)
	ResultDenied  = string(values.StatusDenied)
	ResultSkipped = string(values.StatusSkipped)
)

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/values"
)

// errSkipped marks a step that was deliberately not executed.
var errSkipped = errors.New("skipped")

// StepResult is the outcome of one action of a binding.
type StepResult struct {
	Action actions.Type
	Status values.Status
	Err    error
}

// DispatchResult summarizes one dispatch.
type DispatchResult struct {
	ID               values.DispatchID
	Before           entities.Selection
	After            entities.Selection
	Results          []StepResult
	Steps            int
	Failed           int
	SelectionChanged bool
}

// Dispatcher executes action bindings through capability-scoped drivers.
// It never returns an error: each failing step is logged and the next one
// runs.
type Dispatcher struct {
	store      *WorkspaceStore
	drivers    ports.Drivers
	checker    ports.CapabilityChecker
	metrics    ports.MetricsRecorder
	logger     *slog.Logger
	noMIDIOnce sync.Once
}

// NewDispatcher creates a dispatcher. A nil checker allows every action.
func NewDispatcher(
	store *WorkspaceStore,
	drivers ports.Drivers,
	checker ports.CapabilityChecker,
	metrics ports.MetricsRecorder,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:   store,
		drivers: drivers,
		checker: checker,
		metrics: metrics,
		logger:  logger,
	}
}

// Dispatch runs every action of b in order. The active selection is read
// before the first step and after the last one; the comparison drives
// the stateUpdated event. The store lock is not held while drivers run,
// so concurrent presses may interleave between the two reads.
func (d *Dispatcher) Dispatch(ctx context.Context, controlID string, b *actions.Binding) DispatchResult {
	res := DispatchResult{ID: values.NewDispatchID(), Before: d.store.Selection()}
	log := d.logger.With("dispatch_id", res.ID.String(), "control_id", controlID)

	for i, a := range b.Actions() {
		res.Steps++
		err := d.execute(ctx, controlID, a)
		status := values.StatusOK
		switch {
		case err == nil:
		case errors.Is(err, errSkipped):
			status = values.StatusSkipped
			log.Debug("step skipped", "step", i, "action", a.Type(), "error", err)
		case isCapabilityError(err):
			status = values.StatusDenied
			log.Warn("step denied", "step", i, "action", a.Type(), "error", err)
		default:
			status = values.StatusFailed
			log.Warn("step failed", "step", i, "action", a.Type(), "error", err)
		}
		if status.IsFailure() {
			res.Failed++
		}
		res.Results = append(res.Results, StepResult{Action: a.Type(), Status: status, Err: err})
		if d.metrics != nil {
			d.metrics.DispatchStep(a.Type(), status.String())
		}
	}

	res.After = d.store.Selection()
	res.SelectionChanged = res.Before != res.After
	log.Debug("dispatch finished", "steps", res.Steps, "failed", res.Failed, "selection_changed", res.SelectionChanged)
	return res
}

func isCapabilityError(err error) bool {
	var ce *apperrors.CapabilityError
	return errors.As(err, &ce)
}

func (d *Dispatcher) execute(ctx context.Context, controlID string, a actions.Action) error {
	if required, ok := capabilities.Required(a); ok && d.checker != nil {
		if err := d.checker.Check(required); err != nil {
			return err
		}
	}

	switch a := a.(type) {
	case actions.Hotkey:
		combo, err := actions.ParseHotkey(a.Keys)
		if err != nil {
			return fmt.Errorf("%w: %v", errSkipped, err)
		}
		if d.drivers.Keys == nil {
			return missingDriver(controlID, a)
		}
		return wrapDriver(controlID, a, d.drivers.Keys.SendCombo(ctx, combo))

	case actions.PasteText:
		if d.drivers.Text == nil {
			return missingDriver(controlID, a)
		}
		return wrapDriver(controlID, a, d.drivers.Text.PasteText(ctx, a.Text, a.EnterAfter))

	case actions.TypeText:
		if d.drivers.Text == nil {
			return missingDriver(controlID, a)
		}
		return wrapDriver(controlID, a, d.drivers.Text.TypeText(ctx, a.Text, a.EnterAfter))

	case actions.MediaKey:
		if d.drivers.Media == nil {
			return missingDriver(controlID, a)
		}
		return wrapDriver(controlID, a, d.drivers.Media.SendMediaKey(ctx, a.Key))

	case actions.OpenURL:
		if !actions.IsNetworkURL(a.URL) {
			return fmt.Errorf("%w: not an http(s) URL", errSkipped)
		}
		if d.drivers.URLs == nil {
			return missingDriver(controlID, a)
		}
		return wrapDriver(controlID, a, d.drivers.URLs.OpenURL(ctx, a.URL))

	case actions.OpenApp:
		if d.drivers.Apps == nil {
			return missingDriver(controlID, a)
		}
		return wrapDriver(controlID, a, d.drivers.Apps.Launch(ctx, a.Target, a.Args))

	case actions.MidiCC:
		return d.sendMIDI(ctx, controlID, a, a.Message())

	case actions.MidiNote:
		if err := d.sendMIDI(ctx, controlID, a, a.NoteOn()); err != nil || a.Mode == actions.NoteHold {
			return err
		}
		if err := d.sleep(ctx, time.Duration(a.DurationMs)*time.Millisecond); err != nil {
			return wrapDriver(controlID, a, err)
		}
		return d.sendMIDI(ctx, controlID, a, a.NoteOff())

	case actions.Delay:
		return wrapDriver(controlID, a, d.sleep(ctx, time.Duration(a.Ms)*time.Millisecond))

	case actions.SwitchPage:
		if a.PageID == "" {
			return fmt.Errorf("%w: no page", errSkipped)
		}
		return d.store.SwitchPage(a.PageID)

	case actions.SwitchProfile:
		if a.ProfileID == "" {
			return fmt.Errorf("%w: no profile", errSkipped)
		}
		return d.store.SetActive(a.ProfileID, "")

	case actions.OpenFolder:
		if a.FolderID == "" {
			return fmt.Errorf("%w: no folder", errSkipped)
		}
		return d.store.OpenFolder(a.FolderID)

	case actions.Back:
		_, err := d.store.Back()
		return err

	default:
		return fmt.Errorf("%w: unsupported action %T", errSkipped, a)
	}
}

// sendMIDI writes one message. A missing port is a silent no-op, logged
// once per dispatcher.
func (d *Dispatcher) sendMIDI(ctx context.Context, controlID string, a actions.Action, msg []byte) error {
	if d.drivers.MIDI == nil {
		return missingDriver(controlID, a)
	}
	err := d.drivers.MIDI.Send(ctx, msg)
	if errors.Is(err, ports.ErrNoMIDIPort) {
		d.noMIDIOnce.Do(func() {
			d.logger.Info("no MIDI output port, MIDI actions are ignored")
		})
		return fmt.Errorf("%w: %v", errSkipped, err)
	}
	return wrapDriver(controlID, a, err)
}

func (d *Dispatcher) sleep(ctx context.Context, dur time.Duration) error {
	if d.drivers.Sleep != nil {
		return d.drivers.Sleep.Sleep(ctx, dur)
	}
	t := time.NewTimer(dur)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func wrapDriver(controlID string, a actions.Action, err error) error {
	if err == nil {
		return nil
	}
	return apperrors.NewExecutionError(controlID, string(a.Type()), err)
}

func missingDriver(controlID string, a actions.Action) error {
	return apperrors.NewExecutionError(controlID, string(a.Type()), errors.New("no driver configured"))
}

package drivers

import (
	"context"
	"encoding/hex"
	"log/slog"

	"github.com/remotedeck/remotedeck/internal/application/ports"
)

var (
	_ ports.MIDIOutput = NullMIDI{}
	_ ports.MIDIOutput = (*HelperMIDI)(nil)
)

// NullMIDI is used when no output port is configured. Every send reports
// ports.ErrNoMIDIPort.
type NullMIDI struct{}

// Send implements ports.MIDIOutput.
func (NullMIDI) Send(context.Context, []byte) error {
	return ports.ErrNoMIDIPort
}

// HelperMIDI writes raw MIDI messages through the helper process:
//
//	<helper> midi <port> b0 07 7f
type HelperMIDI struct {
	runner CommandRunner
	helper string
	port   string
	logger *slog.Logger
}

// NewMIDIOutput returns a helper-backed output, or NullMIDI when either
// the helper or the port is not configured.
func NewMIDIOutput(runner CommandRunner, helper, port string, logger *slog.Logger) ports.MIDIOutput {
	if helper == "" || port == "" {
		return NullMIDI{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HelperMIDI{runner: runner, helper: helper, port: port, logger: logger}
}

// Send implements ports.MIDIOutput.
func (m *HelperMIDI) Send(ctx context.Context, msg []byte) error {
	args := make([]string, 0, len(msg)+2)
	args = append(args, "midi", m.port)
	for _, b := range msg {
		args = append(args, hex.EncodeToString([]byte{b}))
	}
	m.logger.Debug("sending MIDI message", "port", m.port, "bytes", hex.EncodeToString(msg))
	return m.runner.Run(ctx, m.helper, args...)
}

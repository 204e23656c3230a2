// Package drivers implements the dispatch driver ports on top of OS
// commands: a keystroke helper process, the platform URL opener, app
// launching and MIDI output.
package drivers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single driver command.
const DefaultTimeout = 5 * time.Second

// maxStderr caps how much helper stderr is kept for error messages.
const maxStderr = 4 * 1024

// CommandRunner runs external commands on behalf of the drivers.
type CommandRunner interface {
	// Run executes name and waits for it to exit.
	Run(ctx context.Context, name string, args ...string) error
	// Start launches name without waiting for it.
	Start(ctx context.Context, name string, args ...string) error
}

// CommandError describes a command that could not be started or exited
// non-zero.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("%s failed: %v", e.Command, e.Err)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec. Every Run is bounded by timeout.
type ExecRunner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewExecRunner creates a runner. A zero timeout uses DefaultTimeout.
func NewExecRunner(timeout time.Duration, logger *slog.Logger) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{timeout: timeout, logger: logger}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	//nolint:gosec // G204: commands come from configuration, arguments are normalized actions
	cmd := exec.CommandContext(ctx, name, args...)
	// Desktop helpers need the session environment (DISPLAY, DBUS, ...).
	cmd.Env = os.Environ()
	stderr := newBoundedBuffer(maxStderr)
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("driver command finished",
		"command", name,
		"duration", time.Since(start),
		"error", err)
	if err == nil {
		return nil
	}

	cmdErr := &CommandError{Command: name, ExitCode: -1, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	if ctx.Err() == context.DeadlineExceeded {
		cmdErr.ExitCode = -1
		cmdErr.Err = fmt.Errorf("timed out after %s: %w", r.timeout, ctx.Err())
	}
	return cmdErr
}

// Start implements CommandRunner. The child outlives the call; it is
// reaped in the background.
func (r *ExecRunner) Start(_ context.Context, name string, args ...string) error {
	//nolint:gosec // G204: launch targets are granted through exec capabilities
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return &CommandError{Command: name, ExitCode: -1, Err: err}
	}
	go func() {
		err := cmd.Wait()
		r.logger.Debug("launched process exited", "command", name, "pid", cmd.Process.Pid, "error", err)
	}()
	return nil
}

// boundedBuffer is an io.Writer that keeps at most limit bytes and
// silently drops the rest.
type boundedBuffer struct {
	buffer    bytes.Buffer
	limit     int
	truncated bool
}

func newBoundedBuffer(limit int) *boundedBuffer {
	return &boundedBuffer{limit: limit}
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buffer.Len()
	if remaining <= 0 {
		b.truncated = true
		return len(p), nil
	}
	if len(p) > remaining {
		b.truncated = true
		b.buffer.Write(p[:remaining])
		return len(p), nil
	}
	return b.buffer.Write(p)
}

func (b *boundedBuffer) String() string {
	return b.buffer.String()
}

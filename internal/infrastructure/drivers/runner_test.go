//go:build !windows

package drivers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remotedeck/remotedeck/internal/infrastructure/drivers"
)

func TestExecRunner_Run(t *testing.T) {
	runner := drivers.NewExecRunner(time.Second, nil)
	ctx := context.Background()

	require.NoError(t, runner.Run(ctx, "true"))

	err := runner.Run(ctx, "sh", "-c", "echo no display >&2; exit 3")
	var cmdErr *drivers.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "no display", cmdErr.Stderr)
	assert.Equal(t, "sh exited with code 3: no display", err.Error())
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := drivers.NewExecRunner(time.Second, nil)

	err := runner.Run(context.Background(), "/nonexistent/deck-keys")
	var cmdErr *drivers.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
}

func TestExecRunner_Timeout(t *testing.T) {
	runner := drivers.NewExecRunner(50*time.Millisecond, nil)

	start := time.Now()
	err := runner.Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExecRunner_StderrIsBounded(t *testing.T) {
	runner := drivers.NewExecRunner(2*time.Second, nil)

	err := runner.Run(context.Background(), "sh", "-c", "head -c 20000 /dev/zero | tr '\\0' x >&2; exit 1")
	var cmdErr *drivers.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Len(t, cmdErr.Stderr, 4*1024)
}

func TestExecRunner_StartDoesNotWait(t *testing.T) {
	runner := drivers.NewExecRunner(time.Second, nil)

	start := time.Now()
	require.NoError(t, runner.Start(context.Background(), "sleep", "2"))
	assert.Less(t, time.Since(start), time.Second)

	assert.Error(t, runner.Start(context.Background(), "/nonexistent/app"))
}

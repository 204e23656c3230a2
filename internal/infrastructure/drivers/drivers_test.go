package drivers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/actions"
	"github.com/remotedeck/remotedeck/internal/infrastructure/drivers"
)

type call struct {
	start bool
	name  string
	args  []string
}

type recordingRunner struct {
	calls []call
	err   error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	return r.err
}

func (r *recordingRunner) Start(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{start: true, name: name, args: args})
	return r.err
}

func TestKeystrokeHelper(t *testing.T) {
	runner := &recordingRunner{}
	helper := drivers.NewKeystrokeHelper(runner, "/usr/local/bin/deck-keys")
	ctx := context.Background()

	combo, err := actions.ParseHotkey("shift+ctrl+a")
	require.NoError(t, err)
	require.NoError(t, helper.SendCombo(ctx, combo))
	require.NoError(t, helper.TypeText(ctx, "-rf", false))
	require.NoError(t, helper.PasteText(ctx, "hello", true))
	require.NoError(t, helper.SendMediaKey(ctx, actions.MediaPlayPause))

	assert.Equal(t, []call{
		{name: "/usr/local/bin/deck-keys", args: []string{"hotkey", "Ctrl+Shift+A"}},
		{name: "/usr/local/bin/deck-keys", args: []string{"type", "--", "-rf"}},
		{name: "/usr/local/bin/deck-keys", args: []string{"paste", "--enter", "--", "hello"}},
		{name: "/usr/local/bin/deck-keys", args: []string{"media", "playPause"}},
	}, runner.calls)
}

func TestKeystrokeHelper_NotConfigured(t *testing.T) {
	runner := &recordingRunner{}
	helper := drivers.NewKeystrokeHelper(runner, "")

	err := helper.TypeText(context.Background(), "x", false)
	assert.ErrorIs(t, err, drivers.ErrHelperNotConfigured)
	assert.Empty(t, runner.calls)
}

func TestSystemOpener(t *testing.T) {
	t.Run("override command", func(t *testing.T) {
		runner := &recordingRunner{}
		opener := drivers.NewSystemOpener(runner, "firefox --new-tab")

		require.NoError(t, opener.OpenURL(context.Background(), "https://example.com"))
		assert.Equal(t, []call{{name: "firefox", args: []string{"--new-tab", "https://example.com"}}}, runner.calls)
	})

	t.Run("rejects non-network URLs", func(t *testing.T) {
		runner := &recordingRunner{}
		opener := drivers.NewSystemOpener(runner, "xdg-open")

		assert.Error(t, opener.OpenURL(context.Background(), "file:///etc/passwd"))
		assert.Empty(t, runner.calls)
	})

	t.Run("runner error is returned", func(t *testing.T) {
		runner := &recordingRunner{err: errors.New("boom")}
		opener := drivers.NewSystemOpener(runner, "xdg-open")

		assert.EqualError(t, opener.OpenURL(context.Background(), "http://example.com"), "boom")
	})
}

func TestAppLauncher(t *testing.T) {
	runner := &recordingRunner{}
	launcher := drivers.NewAppLauncher(runner)

	require.NoError(t, launcher.Launch(context.Background(), "/usr/bin/code", []string{"--new-window"}))
	assert.Equal(t, []call{{start: true, name: "/usr/bin/code", args: []string{"--new-window"}}}, runner.calls)

	assert.Error(t, launcher.Launch(context.Background(), "  ", nil))
	assert.Len(t, runner.calls, 1)
}

func TestMIDIOutput(t *testing.T) {
	t.Run("unconfigured port", func(t *testing.T) {
		out := drivers.NewMIDIOutput(&recordingRunner{}, "deck-keys", "", nil)
		assert.ErrorIs(t, out.Send(context.Background(), []byte{0xB0, 7, 127}), ports.ErrNoMIDIPort)
	})

	t.Run("helper receives hex bytes", func(t *testing.T) {
		runner := &recordingRunner{}
		out := drivers.NewMIDIOutput(runner, "deck-keys", "IAC Bus 1", nil)

		require.NoError(t, out.Send(context.Background(), []byte{0xB0, 7, 127}))
		assert.Equal(t, []call{{name: "deck-keys", args: []string{"midi", "IAC Bus 1", "b0", "07", "7f"}}}, runner.calls)
	})
}

func TestContextSleeper(t *testing.T) {
	var s drivers.ContextSleeper

	assert.NoError(t, s.Sleep(context.Background(), 0))
	assert.NoError(t, s.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, s.Sleep(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

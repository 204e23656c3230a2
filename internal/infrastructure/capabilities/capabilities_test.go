package capabilities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
)

func TestGrantStore_LoadAndSave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "grants.yaml")
	store := NewGrantStore(path)
	assert.Equal(t, path, store.Path())

	grant, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, grant)

	obs := capabilities.Capability{Kind: "exec", Pattern: "obs"}
	site := capabilities.Capability{Kind: "network", Pattern: "twitch.tv"}
	require.NoError(t, store.Save(capabilities.Grant{obs, site}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `capabilities:
  - kind: exec
    pattern: obs
  - kind: network
    pattern: twitch.tv
`, string(content))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, capabilities.Grant{obs, site}, loaded)
}

func TestGrantStore_Load_SkipsIncompleteEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "grants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`capabilities:
  - kind: media
    pattern: "*"
  - kind: exec
  - kind: media
    pattern: "*"
`), 0o600))

	grant, err := NewGrantStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, capabilities.Grant{{Kind: "media", Pattern: "*"}}, grant)
}

func TestGrantStore_Load_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "grants.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capabilities: [kind: exec\n"), 0o600))

	_, err := NewGrantStore(path).Load()
	assert.ErrorContains(t, err, "failed to parse grants file")
}

func TestTerminalPrompter_IsInteractive(t *testing.T) {
	// Not parallel: inspects os.Stdin.
	assert.IsType(t, true, NewTerminalPrompter().IsInteractive())
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		capability capabilities.Capability
		expected   string
	}{
		{capabilities.Capability{Kind: "exec", Pattern: "*"}, "Launch any program"},
		{capabilities.Capability{Kind: "exec", Pattern: "obs"}, "Launch programs: obs"},
		{capabilities.Capability{Kind: "network", Pattern: "*"}, "Open any web address"},
		{capabilities.Capability{Kind: "network", Pattern: "*.example.com"}, "Open web addresses under example.com"},
		{capabilities.Capability{Kind: "network", Pattern: "twitch.tv"}, "Open web addresses on twitch.tv"},
		{capabilities.Capability{Kind: "keyboard", Pattern: "*"}, "Send hotkeys and text to the focused window"},
		{capabilities.Capability{Kind: "media", Pattern: "*"}, "Press media keys"},
		{capabilities.Capability{Kind: "midi", Pattern: "*"}, "Send MIDI messages"},
		{capabilities.Capability{Kind: "gpio", Pattern: "17"}, "gpio: 17"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.capability))
		})
	}
}

func TestFormatNonInteractiveError(t *testing.T) {
	t.Parallel()

	err := FormatNonInteractiveError(capabilities.Grant{{Kind: "exec", Pattern: "bash"}}, "/home/u/.remotedeck/grants.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "  - exec:bash: Controls can execute arbitrary shell commands")
	assert.Contains(t, err.Error(), "2. Pass --yes")
	assert.Contains(t, err.Error(), "3. Edit /home/u/.remotedeck/grants.yaml")
}

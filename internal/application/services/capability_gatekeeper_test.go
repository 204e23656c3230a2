package services

import (
	"testing"

	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityGatekeeper_Check(t *testing.T) {
	gatekeeper := NewCapabilityGatekeeper(
		capabilities.ParseGrant([]string{"keyboard", "network:*.example.com", "exec:obs"}),
		SecurityStandard, nil)

	assert.NoError(t, gatekeeper.Check(capabilities.Capability{Kind: capabilities.KindKeyboard, Pattern: "hotkey"}))
	assert.NoError(t, gatekeeper.Check(capabilities.Capability{Kind: capabilities.KindNetwork, Pattern: "docs.example.com"}))
	assert.NoError(t, gatekeeper.Check(capabilities.Capability{Kind: capabilities.KindExec, Pattern: "obs"}))

	err := gatekeeper.Check(capabilities.Capability{Kind: capabilities.KindExec, Pattern: "bash"})
	var capErr *apperrors.CapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "bash", capErr.Required.Pattern)

	assert.Error(t, gatekeeper.Check(capabilities.Capability{Kind: capabilities.KindMIDI, Pattern: "cc"}))
}

func TestCapabilityGatekeeper_SecurityLevels(t *testing.T) {
	grant := capabilities.ParseGrant([]string{"exec:*", "midi"})
	launch := capabilities.Capability{Kind: capabilities.KindExec, Pattern: "obs"}
	other := capabilities.Capability{Kind: capabilities.KindMedia, Pattern: "volUp"}

	tests := []struct {
		name          string
		securityLevel string
		wantLaunch     bool
		wantOther     bool
	}{
		{name: "strict drops broad grants", securityLevel: SecurityStrict, wantLaunch: false, wantOther: false},
		{name: "standard keeps broad grants", securityLevel: SecurityStandard, wantLaunch: true, wantOther: false},
		{name: "empty level means standard", securityLevel: "", wantLaunch: true, wantOther: false},
		{name: "permissive allows everything", securityLevel: SecurityPermissive, wantLaunch: true, wantOther: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewCapabilityGatekeeper(grant, tt.securityLevel, nil)
			assert.Equal(t, tt.wantLaunch, g.Check(launch) == nil)
			assert.Equal(t, tt.wantOther, g.Check(other) == nil)
			assert.True(t, g.Granted().Contains(capabilities.Capability{Kind: capabilities.KindMIDI, Pattern: "*"}))
		})
	}
}

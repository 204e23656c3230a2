// Package config holds the resolved runtime configuration that flows from
// the CLI into the container.
package config

import (
	"time"

	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
	"github.com/remotedeck/remotedeck/internal/infrastructure/system"
)

// RuntimeConfig aggregates all runtime configuration.
// This is a value object that flows through the system.
type RuntimeConfig struct {
	// Server
	ListenAddr string

	// Workspace
	WorkspacePath string
	SaveDebounce  time.Duration
	// Ephemeral keeps the workspace in memory only.
	Ephemeral bool

	// Drivers
	KeystrokeHelper string
	Opener          string
	MIDIPort        string
	DriverTimeout   time.Duration

	// Assets
	AssetsBaseURL string
	AssetsDir     string

	// Metrics
	MetricsEnabled bool
	RuntimeMetrics bool

	// Security
	SecurityLevel string
	Grant         capabilities.Grant
	// GrantsPath is the file of operator-added grants; empty disables it.
	GrantsPath string
}

// FromSystemConfig creates RuntimeConfig from system config.
func FromSystemConfig(sys *system.Config) *RuntimeConfig {
	return &RuntimeConfig{
		ListenAddr:      sys.Server.Listen,
		WorkspacePath:   sys.Workspace.Path,
		SaveDebounce:    sys.Workspace.SaveDebounce,
		KeystrokeHelper: sys.Drivers.KeystrokeHelper,
		Opener:          sys.Drivers.Opener,
		MIDIPort:        sys.Drivers.MIDIPort,
		DriverTimeout:   sys.Drivers.Timeout,
		AssetsBaseURL:   sys.Assets.BaseURL,
		AssetsDir:       sys.Assets.Dir,
		MetricsEnabled:  sys.Metrics.Enabled,
		RuntimeMetrics:  sys.Metrics.Runtime,
		SecurityLevel:   string(sys.Security.GetSecurityLevel()),
		Grant:           sys.Grant(),
		GrantsPath:      sys.Security.GrantsFile,
	}
}

// ApplyDefaults applies defaults for zero values.
func (r *RuntimeConfig) ApplyDefaults() {
	if r.ListenAddr == "" {
		r.ListenAddr = system.DefaultListen
	}
	if r.SaveDebounce == 0 {
		r.SaveDebounce = system.DefaultSaveDebounce
	}
	if r.DriverTimeout == 0 {
		r.DriverTimeout = system.DefaultDriverTimeout
	}
	if r.AssetsBaseURL == "" {
		r.AssetsBaseURL = system.DefaultAssetsBaseURL
	}
	if r.SecurityLevel == "" {
		r.SecurityLevel = string(system.SecurityLevelStandard)
	}
	// A nil grant means nothing is allowed; that is left as is.
}

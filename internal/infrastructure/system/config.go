// Package system loads the operator's configuration file
// (~/.remotedeck/config.yaml): listen address, workspace location,
// driver settings and capability grants.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
)

// Defaults used when the file or a key is absent.
const (
	DefaultListen        = "127.0.0.1:8787"
	DefaultSaveDebounce  = 300 * time.Millisecond
	DefaultDriverTimeout = 5 * time.Second
	DefaultAssetsBaseURL = "/assets/icons/"
	dirName              = ".remotedeck"
)

// Config represents the configuration file.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Workspace    WorkspaceConfig    `yaml:"workspace"`
	Drivers      DriversConfig      `yaml:"drivers"`
	Assets       AssetsConfig       `yaml:"assets"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Security     SecurityConfig     `yaml:"security"`
	Capabilities []CapabilityConfig `yaml:"capabilities"`
}

// ServerConfig configures the HTTP/websocket listener.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// WorkspaceConfig locates the workspace document.
type WorkspaceConfig struct {
	Path         string        `yaml:"path"`
	SaveDebounce time.Duration `yaml:"save_debounce"`
}

// DriversConfig configures the host side effects.
type DriversConfig struct {
	// KeystrokeHelper is the injection process for hotkeys, text and media keys.
	KeystrokeHelper string `yaml:"keystroke_helper"`
	// Opener replaces the platform URL opener, e.g. "firefox --new-tab".
	Opener   string        `yaml:"opener"`
	MIDIPort string        `yaml:"midi_port"`
	Timeout  time.Duration `yaml:"timeout"`
}

// AssetsConfig controls how icon ids become URLs. Dir, when set, is
// served under BaseURL.
type AssetsConfig struct {
	BaseURL string `yaml:"base_url"`
	Dir     string `yaml:"dir"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Runtime bool `yaml:"runtime"`
}

// CapabilityConfig represents a capability grant in the configuration.
type CapabilityConfig struct {
	Kind    string `yaml:"kind"`
	Pattern string `yaml:"pattern"`
}

// SecurityConfig configures capability security policies.
type SecurityConfig struct {
	// Level defines the security policy: "strict", "standard", or "permissive"
	// - strict: drop broad grants such as exec:*
	// - standard: keep broad grants with a warning (default)
	// - permissive: keep broad grants
	Level string `yaml:"level"`
	// GrantsFile holds grants added with "remotedeck grants add". They
	// are merged with the capabilities list at startup.
	GrantsFile string `yaml:"grants_file"`
}

// SecurityLevel represents the security enforcement level.
type SecurityLevel string

const (
	SecurityLevelStrict     SecurityLevel = "strict"
	SecurityLevelStandard   SecurityLevel = "standard"
	SecurityLevelPermissive SecurityLevel = "permissive"
)

// GetSecurityLevel returns the configured security level, defaulting to Standard.
func (c *SecurityConfig) GetSecurityLevel() SecurityLevel {
	switch SecurityLevel(c.Level) {
	case SecurityLevelStrict, SecurityLevelPermissive:
		return SecurityLevel(c.Level)
	default:
		return SecurityLevelStandard
	}
}

// Dir returns ~/.remotedeck, or .remotedeck when the home directory is
// unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns a Config with defaults for every field. Every
// capability kind is granted.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Listen: DefaultListen},
		Workspace: WorkspaceConfig{
			Path:         filepath.Join(Dir(), "workspace.json"),
			SaveDebounce: DefaultSaveDebounce,
		},
		Drivers: DriversConfig{Timeout: DefaultDriverTimeout},
		Assets: AssetsConfig{
			BaseURL: DefaultAssetsBaseURL,
			Dir:     filepath.Join(Dir(), "icons"),
		},
		Metrics:  MetricsConfig{Enabled: true},
		Security: SecurityConfig{
			Level:      string(SecurityLevelStandard),
			GrantsFile: filepath.Join(Dir(), "grants.yaml"),
		},
		Capabilities: []CapabilityConfig{
			{Kind: capabilities.KindExec, Pattern: "*"},
			{Kind: capabilities.KindNetwork, Pattern: "*"},
			{Kind: capabilities.KindKeyboard, Pattern: "*"},
			{Kind: capabilities.KindMedia, Pattern: "*"},
			{Kind: capabilities.KindMIDI, Pattern: "*"},
		},
	}
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// Load reads the configuration at path over DefaultConfig(). A missing
// file yields the defaults. A capabilities list in the file replaces the
// default grants entirely.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	//nolint:gosec // G304: path is the operator's config file
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, apperrors.NewConfigurationError("config", "failed to parse "+path, err)
	}
	config.Workspace.Path = ExpandHome(config.Workspace.Path)
	config.Assets.Dir = ExpandHome(config.Assets.Dir)
	config.Drivers.KeystrokeHelper = ExpandHome(config.Drivers.KeystrokeHelper)
	config.Security.GrantsFile = ExpandHome(config.Security.GrantsFile)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Listen) == "" {
		return apperrors.NewConfigurationError("server.listen", "listen address is required", nil)
	}
	if strings.TrimSpace(c.Workspace.Path) == "" {
		return apperrors.NewConfigurationError("workspace.path", "workspace path is required", nil)
	}
	if c.Workspace.SaveDebounce < 0 {
		return apperrors.NewConfigurationError("workspace.save_debounce", "must not be negative", nil)
	}
	if c.Drivers.Timeout < 0 {
		return apperrors.NewConfigurationError("drivers.timeout", "must not be negative", nil)
	}
	for i, capability := range c.Capabilities {
		if strings.TrimSpace(capability.Kind) == "" || strings.TrimSpace(capability.Pattern) == "" {
			return apperrors.NewConfigurationError(
				fmt.Sprintf("capabilities[%d]", i), "kind and pattern are required", nil)
		}
	}
	return nil
}

// Grant converts the configured capabilities into a domain grant.
func (c *Config) Grant() capabilities.Grant {
	grant := capabilities.NewGrant()
	for _, capability := range c.Capabilities {
		grant.Add(capabilities.Capability{
			Kind:    strings.TrimSpace(capability.Kind),
			Pattern: strings.TrimSpace(capability.Pattern),
		})
	}
	return grant
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

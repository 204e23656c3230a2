// Package capabilities persists and describes the capability grants an
// operator adds from the command line.
package capabilities

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
)

// GrantStore provides file-based persistence for capability grants.
type GrantStore struct {
	path string
}

// NewGrantStore creates a store backed by the YAML file at path.
func NewGrantStore(path string) *GrantStore {
	return &GrantStore{path: path}
}

// Path returns the path to the grants file.
func (s *GrantStore) Path() string {
	return s.path
}

type grantEntry struct {
	Kind    string `yaml:"kind"`
	Pattern string `yaml:"pattern"`
}

// grantsFile is the YAML layout of the grants file.
type grantsFile struct {
	Capabilities []grantEntry `yaml:"capabilities"`
}

// Load reads the stored grants. A missing file is an empty grant.
func (s *GrantStore) Load() (capabilities.Grant, error) {
	//nolint:gosec // G304: path comes from the operator's config
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return capabilities.NewGrant(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read grants file: %w", err)
	}

	var f grantsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse grants file: %w", err)
	}

	grant := capabilities.NewGrant()
	for _, e := range f.Capabilities {
		if e.Kind == "" || e.Pattern == "" {
			continue
		}
		grant.Add(capabilities.Capability{Kind: e.Kind, Pattern: e.Pattern})
	}
	return grant, nil
}

// Save replaces the stored grants.
func (s *GrantStore) Save(grant capabilities.Grant) error {
	//nolint:gosec // G301: 0o755 is standard for user config directories
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f := grantsFile{Capabilities: make([]grantEntry, len(grant))}
	for i, c := range grant {
		f.Capabilities[i] = grantEntry{Kind: c.Kind, Pattern: c.Pattern}
	}

	data, err := yaml.MarshalWithOptions(f, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to marshal grants: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remotedeck/remotedeck/internal/application/dto"
)

func sampleReport() dto.WorkspaceReport {
	return dto.WorkspaceReport{
		Path:          "/tmp/workspace.json",
		Valid:         true,
		FormatVersion: "1.0.0",
		Profiles:      1,
		Pages:         2,
		Controls:      3,
		Repairs:       []string{"placement1: dropped placement of missing element button9"},
	}
}

func TestFormatterFactory_Create(t *testing.T) {
	factory := NewFormatterFactory()
	var buf bytes.Buffer

	for _, format := range append(factory.SupportedFormats(), "") {
		f, err := factory.Create(format, &buf)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := factory.Create("sarif", &buf)
	assert.EqualError(t, err, "unknown format: sarif (supported: [text json yaml])")
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format(sampleReport()))

	assert.Equal(t, "/tmp/workspace.json: valid (1 profiles, 2 pages, 3 controls)\n"+
		"1 repairs will be applied on load:\n"+
		"  - placement1: dropped placement of missing element button9\n", buf.String())

	buf.Reset()
	require.NoError(t, NewTextFormatter(&buf).Format(dto.WorkspaceReport{
		Path:   "/tmp/bad.json",
		Issues: []string{"/profiles: got string, want array"},
	}))
	assert.Equal(t, "/tmp/bad.json: invalid\n  - /profiles: got string, want array\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).Format(sampleReport()))

	var got dto.WorkspaceReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)
	assert.Contains(t, buf.String(), "\n  \"valid\": true")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(sampleReport()))

	assert.Contains(t, buf.String(), "format_version: 1.0.0")
	var got dto.WorkspaceReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)
}

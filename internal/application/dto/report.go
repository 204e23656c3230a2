package dto

// WorkspaceReport describes a checked workspace document.
type WorkspaceReport struct {
	Path          string   `json:"path" yaml:"path"`
	Valid         bool     `json:"valid" yaml:"valid"`
	FormatVersion string   `json:"formatVersion,omitempty" yaml:"format_version,omitempty"`
	Profiles      int      `json:"profiles" yaml:"profiles"`
	Pages         int      `json:"pages" yaml:"pages"`
	Controls      int      `json:"controls" yaml:"controls"`
	Issues        []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Repairs       []string `json:"repairs,omitempty" yaml:"repairs,omitempty"`
}

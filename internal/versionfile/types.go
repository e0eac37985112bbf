package versionfile

import (
	"path/filepath"
	"strings"
)

// Format is the kind of file a version is written to.
type Format string

const (
	// FormatTemplate renders a text template; the default for Python modules.
	FormatTemplate Format = "template"

	// FormatJSON updates a field in a JSON document.
	FormatJSON Format = "json"

	// FormatYAML updates a field in a YAML document.
	FormatYAML Format = "yaml"

	// FormatTOML updates a field in a TOML document.
	FormatTOML Format = "toml"

	// FormatRaw writes the bare version.
	FormatRaw Format = "raw"
)

// Target describes where and how a version is written.
type Target struct {
	// Path is the file path.
	Path string

	// Format selects the writer.
	Format Format

	// Field is the dot path of the version for JSON, YAML and TOML.
	Field string

	// Template is the text rendered for FormatTemplate.
	Template string
}

// DetectFormat picks a format from the file name. Unknown extensions
// return "" so callers can insist on an explicit template.
func DetectFormat(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch filepath.Ext(base) {
	case ".py", ".pyi":
		return FormatTemplate
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".txt", ".version", "":
		return FormatRaw
	default:
		return ""
	}
}

// DefaultField returns the usual version field for well-known manifests.
func DefaultField(path string) string {
	switch filepath.Base(path) {
	case "Cargo.toml":
		return "package.version"
	case "pyproject.toml":
		return "project.version"
	default:
		return "version"
	}
}

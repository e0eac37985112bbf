package versionfile

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vcsver/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// pythonVersionRe finds the version assigned in a generated Python module.
var pythonVersionRe = regexp.MustCompile(`(?m)^__version__\s*=\s*(?:version\s*=\s*)?['"]([^'"]*)['"]`)

// Reader reads the version currently recorded in a target file.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read returns the version recorded in target.
func (r *Reader) Read(ctx context.Context, target Target) (string, error) {
	if target.Path == "" {
		return "", fmt.Errorf("file path is required")
	}

	data, err := r.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", target.Path, err)
	}

	switch target.Format {
	case FormatRaw:
		return strings.TrimSpace(string(data)), nil
	case FormatTemplate:
		m := pythonVersionRe.FindSubmatch(data)
		if m == nil {
			return "", fmt.Errorf("no __version__ assignment found in %q", target.Path)
		}
		return string(m[1]), nil
	case FormatJSON:
		return readJSONField(data, target)
	case FormatYAML, FormatTOML:
		return readField(data, target)
	default:
		return "", fmt.Errorf("unsupported format: %q", target.Format)
	}
}

// readJSONField looks the field up with gjson path syntax.
func readJSONField(data []byte, target Target) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("failed to parse JSON in %q: invalid document", target.Path)
	}
	result := gjson.GetBytes(data, target.Field)
	if !result.Exists() {
		return "", fmt.Errorf("in file %q: field %q not found", target.Path, target.Field)
	}
	if result.Type != gjson.String {
		return "", fmt.Errorf("field %q in %q is not a string", target.Field, target.Path)
	}
	return result.String(), nil
}

func readField(data []byte, target Target) (string, error) {
	obj, err := decode(data, target)
	if err != nil {
		return "", err
	}

	value, err := getNested(obj, target.Field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", target.Path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", target.Field, target.Path)
	}
	return version, nil
}

// decode parses a structured document into a generic table.
func decode(data []byte, target Target) (map[string]any, error) {
	obj := map[string]any{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return obj, nil
	}

	var err error
	switch target.Format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &obj)
	case FormatTOML:
		err = toml.Unmarshal(data, &obj)
	default:
		return nil, fmt.Errorf("unsupported format: %q", target.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s in %q: %w", strings.ToUpper(string(target.Format)), target.Path, err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

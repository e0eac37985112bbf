package versionfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vcsver/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Writer records a version in a target file.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write records version in target.
func (w *Writer) Write(ctx context.Context, target Target, version string) error {
	if target.Path == "" {
		return fmt.Errorf("file path is required")
	}

	var (
		data []byte
		err  error
	)
	switch target.Format {
	case FormatTemplate:
		if target.Template == "" {
			return fmt.Errorf("a template is required to write %q", target.Path)
		}
		data = []byte(Render(target.Template, version))
	case FormatRaw:
		data = []byte(version + "\n")
	case FormatJSON:
		data, err = w.updateJSON(ctx, target, version)
	case FormatYAML, FormatTOML:
		data, err = w.updateDocument(ctx, target, version)
	default:
		return fmt.Errorf("unsupported format: %q", target.Format)
	}
	if err != nil {
		return err
	}

	if err := w.fs.WriteFile(ctx, target.Path, data, core.PermFile); err != nil {
		return fmt.Errorf("failed to write file %q: %w", target.Path, err)
	}
	return nil
}

// readExisting returns the file contents, or nil when the file does not exist.
func (w *Writer) readExisting(ctx context.Context, path string) ([]byte, error) {
	data, err := w.fs.ReadFile(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return data, nil
}

// updateJSON sets the field with sjson so key order and layout survive.
func (w *Writer) updateJSON(ctx context.Context, target Target, version string) ([]byte, error) {
	if target.Field == "" {
		return nil, fmt.Errorf("field is required for JSON format")
	}

	data, err := w.readExisting(ctx, target.Path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		data = []byte("{}")
	}

	updated, err := sjson.SetBytes(data, target.Field, version)
	if err != nil {
		return nil, fmt.Errorf("failed to set version in %q: %w", target.Path, err)
	}
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}

// updateDocument decodes a YAML or TOML document, sets the field and
// re-encodes it.
func (w *Writer) updateDocument(ctx context.Context, target Target, version string) ([]byte, error) {
	if target.Field == "" {
		return nil, fmt.Errorf("field is required for %s format", strings.ToUpper(string(target.Format)))
	}

	data, err := w.readExisting(ctx, target.Path)
	if err != nil {
		return nil, err
	}
	obj, err := decode(data, target)
	if err != nil {
		return nil, err
	}

	if err := setNested(obj, target.Field, version); err != nil {
		return nil, fmt.Errorf("in file %q: %w", target.Path, err)
	}

	var out []byte
	if target.Format == FormatYAML {
		out, err = yaml.Marshal(obj)
	} else {
		out, err = toml.Marshal(obj)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s for %q: %w", strings.ToUpper(string(target.Format)), target.Path, err)
	}
	return out, nil
}

// ReadWriter combines Reader and Writer functionality.
type ReadWriter struct {
	*Reader
	*Writer
}

// NewReadWriter creates a new ReadWriter with the given filesystem.
func NewReadWriter(fs core.FileSystem) *ReadWriter {
	return &ReadWriter{
		Reader: NewReader(fs),
		Writer: NewWriter(fs),
	}
}

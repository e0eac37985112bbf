// Package buildhook writes the resolved version into a file of the
// project, such as a generated _version.py module or a package manifest.
package buildhook

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/vcsver/internal/core"
	"github.com/indaco/vcsver/internal/versionfile"
	"github.com/indaco/vcsver/internal/versionsource"
)

// Configuration keys of the build hook table.
const (
	KeyVersionFile = "version-file"
	KeyTemplate    = "template"
	KeyField       = "field"
)

// Hook writes the version file configured for a project.
type Hook struct {
	root   string
	config map[string]any
	rw     *versionfile.ReadWriter
}

// Result reports what Write did.
type Result struct {
	// Path is the file that was written.
	Path string

	// Previous is the version recorded before the write, or "" if the file
	// was missing or unreadable.
	Previous string

	// Version is the version written.
	Version string
}

// Changed reports whether the recorded version differs from the previous one.
func (r Result) Changed() bool {
	return r.Previous != r.Version
}

// New creates a Hook for the project at root. A nil fs uses the real filesystem.
func New(root string, cfg map[string]any, fs core.FileSystem) *Hook {
	if cfg == nil {
		cfg = map[string]any{}
	}
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	return &Hook{root: root, config: cfg, rw: versionfile.NewReadWriter(fs)}
}

// Enabled reports whether a version file is configured.
func (h *Hook) Enabled() bool {
	_, ok := h.config[KeyVersionFile]
	return ok
}

// Target builds the write target from the configuration.
func (h *Hook) Target() (versionfile.Target, error) {
	path, err := versionsource.StringOption(h.config, KeyVersionFile, "")
	if err != nil {
		return versionfile.Target{}, err
	}
	if path == "" {
		return versionfile.Target{}, fmt.Errorf("option `%s` must be specified", KeyVersionFile)
	}
	tmpl, err := versionsource.StringOption(h.config, KeyTemplate, "")
	if err != nil {
		return versionfile.Target{}, err
	}
	field, err := versionsource.StringOption(h.config, KeyField, "")
	if err != nil {
		return versionfile.Target{}, err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(h.root, filepath.FromSlash(path))
	}
	target := versionfile.Target{Path: path, Template: tmpl, Field: field}

	if tmpl != "" {
		target.Format = versionfile.FormatTemplate
		return target, nil
	}

	target.Format = versionfile.DetectFormat(path)
	switch target.Format {
	case "":
		return versionfile.Target{}, fmt.Errorf("no default template for %q, set option `%s`", filepath.Base(path), KeyTemplate)
	case versionfile.FormatTemplate:
		target.Template = versionfile.DefaultPythonTemplate
	case versionfile.FormatJSON, versionfile.FormatYAML, versionfile.FormatTOML:
		if target.Field == "" {
			target.Field = versionfile.DefaultField(path)
		}
	}
	return target, nil
}

// Write records version in the configured file.
func (h *Hook) Write(ctx context.Context, version string) (Result, error) {
	target, err := h.Target()
	if err != nil {
		return Result{}, err
	}

	previous, err := h.rw.Read(ctx, target)
	if err != nil {
		previous = ""
	}

	if err := h.rw.Write(ctx, target, version); err != nil {
		return Result{}, err
	}
	return Result{Path: target.Path, Previous: previous, Version: version}, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vcsver/internal/core"
)

// File is the on-disk layout of .vcsver.yaml written by init.
type File struct {
	Source          string         `yaml:"source,omitempty"`
	TagPattern      string         `yaml:"tag-pattern,omitempty"`
	FallbackVersion string         `yaml:"fallback-version,omitempty"`
	DistName        string         `yaml:"dist_name,omitempty"`
	RawOptions      map[string]any `yaml:"raw-options,omitempty"`
	BuildHook       *BuildHookFile `yaml:"build-hook,omitempty"`
}

// BuildHookFile is the build-hook table of .vcsver.yaml.
type BuildHookFile struct {
	VersionFile string `yaml:"version-file"`
	Template    string `yaml:"template,omitempty"`
	Field       string `yaml:"field,omitempty"`
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save writes the configuration to .vcsver.yaml in root.
func (s *ConfigSaver) Save(file *File, root string) error {
	return s.SaveTo(file, filepath.Join(root, FileName))
}

// SaveTo writes the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(file *File, configFile string) error {
	data, err := s.marshaler.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	f, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, core.PermFile)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer f.Close()

	if _, err := s.fileWriter.WriteFile(f, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// SaveConfigFn is the saver used by the CLI; tests may replace it.
var SaveConfigFn = func(file *File, root string) error {
	return defaultConfigSaver.Save(file, root)
}

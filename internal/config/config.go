package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/pelletier/go-toml/v2"
)

// Configuration file names, in lookup order.
const (
	FileName      = ".vcsver.yaml"
	HatchFile     = "hatch.toml"
	PyprojectFile = "pyproject.toml"
)

// EnvConfigPath names an explicit configuration file.
const EnvConfigPath = "VCSVER_CONFIG"

// buildHookKey is the table of .vcsver.yaml holding build hook options.
const buildHookKey = "build-hook"

// Config is the host configuration for one project.
type Config struct {
	// Path is the file the configuration was read from; empty for defaults.
	Path string

	// Version is the version-source table.
	Version map[string]any

	// BuildHook is the build hook table, nil when no hook is configured.
	BuildHook map[string]any

	// ProjectName is [project].name from pyproject.toml, if known.
	ProjectName string
}

// Default returns an empty configuration.
func Default() *Config {
	return &Config{Version: map[string]any{}}
}

// Source returns the selected version source plugin, or "" if unset.
func (c *Config) Source() string {
	s, _ := c.Version["source"].(string)
	return s
}

// VersionSourceConfig returns a copy of the version table to hand to a
// VersionSource. dist_name is filled from the project name when unset.
func (c *Config) VersionSourceConfig() versionsource.Config {
	out := make(versionsource.Config, len(c.Version)+1)
	for k, v := range c.Version {
		out[k] = v
	}
	if _, ok := out[versionsource.KeyDistName]; !ok && c.ProjectName != "" {
		out[versionsource.KeyDistName] = c.ProjectName
	}
	return out
}

// LoadConfigFn is the loader used by the CLI; tests may replace it.
var LoadConfigFn = Load

// Load reads the configuration for the project at root. explicitPath, when
// set, names the file to use. Otherwise the lookup order is the
// VCSVER_CONFIG variable, then .vcsver.yaml, hatch.toml and pyproject.toml
// in root. A relative VCSVER_CONFIG path is taken relative to root, like the
// files after it. A project without any of them gets Default().
func Load(root, explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return loadFile(root, explicitPath)
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvConfigPath)
		}
		if !filepath.IsAbs(cleanPath) {
			cleanPath = filepath.Join(root, cleanPath)
		}
		return loadFile(root, cleanPath)
	}

	for _, name := range []string{FileName, HatchFile, PyprojectFile} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		return loadFile(root, path)
	}

	return Default(), nil
}

func loadFile(root, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = parseYAML(data)
	case ".toml":
		cfg, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported config file %q: expected .yaml, .yml or .toml", path)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	cfg.Path = path
	if cfg.ProjectName == "" && filepath.Base(path) != PyprojectFile {
		cfg.ProjectName = readProjectName(filepath.Join(root, PyprojectFile))
	}
	return cfg, nil
}

// parseYAML reads a .vcsver.yaml document: version-source keys at the top
// level and an optional build-hook table.
func parseYAML(data []byte) (*Config, error) {
	raw := map[string]any{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}

	cfg := Default()
	for k, v := range raw {
		if k == buildHookKey {
			continue
		}
		cfg.Version[k] = v
	}

	if hook, ok := raw[buildHookKey]; ok {
		table, ok := hook.(map[string]any)
		if !ok {
			return nil, &versionsource.ConfigTypeError{Option: buildHookKey, Kind: versionsource.KindTable}
		}
		cfg.BuildHook = table
	}
	return cfg, nil
}

type buildTable struct {
	Hooks map[string]any `toml:"hooks"`
}

// tomlDocument covers both the pyproject.toml layout ([tool.hatch.*]) and
// the hatch.toml layout (top-level [version] and [build]).
type tomlDocument struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Hatch struct {
			Version map[string]any `toml:"version"`
			Build   buildTable     `toml:"build"`
		} `toml:"hatch"`
	} `toml:"tool"`
	Version map[string]any `toml:"version"`
	Build   buildTable     `toml:"build"`
}

func parseTOML(data []byte) (*Config, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.ProjectName = doc.Project.Name

	version, hooks := doc.Tool.Hatch.Version, doc.Tool.Hatch.Build.Hooks
	if version == nil && hooks == nil {
		version, hooks = doc.Version, doc.Build.Hooks
	}
	if version != nil {
		cfg.Version = version
	}

	if hook, ok := hooks[versionsource.PluginName]; ok {
		table, ok := hook.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("build hook %q must be a table", versionsource.PluginName)
		}
		cfg.BuildHook = table
	}
	return cfg, nil
}

// readProjectName returns [project].name from a pyproject.toml, or "".
func readProjectName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc struct {
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.Project.Name
}

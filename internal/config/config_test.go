package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/vcsver/internal/testutils"
	"github.com/indaco/vcsver/internal/versionsource"
)

func checkError(t *testing.T, err error, wantErr bool) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("unexpected error state: got %v, wantErr = %v", err, wantErr)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantPath    string
		wantSource  string
		wantProject string
		wantHook    bool
		wantKey     string
		wantValue   any
	}{
		{
			name:     "no configuration",
			wantPath: "",
		},
		{
			name: "vcsver yaml",
			files: map[string]string{
				FileName: "source: vcs\ntag-pattern: '^v(?P<version>.+)$'\nbuild-hook:\n  version-file: VERSION\n",
			},
			wantPath:   FileName,
			wantSource: "vcs",
			wantHook:   true,
			wantKey:    "tag-pattern",
			wantValue:  "^v(?P<version>.+)$",
		},
		{
			name: "empty vcsver yaml",
			files: map[string]string{
				FileName: "",
			},
			wantPath: FileName,
		},
		{
			name: "pyproject layout",
			files: map[string]string{
				PyprojectFile: `[project]
name = "my-pkg"

[tool.hatch.version]
source = "vcs"
fallback-version = "0.0.0"

[tool.hatch.build.hooks.vcs]
version-file = "src/my_pkg/_version.py"
`,
			},
			wantPath:    PyprojectFile,
			wantSource:  "vcs",
			wantProject: "my-pkg",
			wantHook:    true,
			wantKey:     "fallback-version",
			wantValue:   "0.0.0",
		},
		{
			name: "hatch toml layout takes project name from pyproject",
			files: map[string]string{
				HatchFile:     "[version]\nsource = \"vcs\"\n",
				PyprojectFile: "[project]\nname = \"other\"\n",
			},
			wantPath:    HatchFile,
			wantSource:  "vcs",
			wantProject: "other",
		},
		{
			name: "yaml wins over pyproject",
			files: map[string]string{
				FileName:      "source: vcs\n",
				PyprojectFile: "[tool.hatch.version]\nsource = \"regex\"\n",
			},
			wantPath:   FileName,
			wantSource: "vcs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutils.UnsetEnv(t, EnvConfigPath)
			root := t.TempDir()
			for name, content := range tt.files {
				testutils.WriteTempFile(t, root, name, content)
			}

			cfg, err := Load(root, "")
			checkError(t, err, false)

			wantPath := ""
			if tt.wantPath != "" {
				wantPath = filepath.Join(root, tt.wantPath)
			}
			if cfg.Path != wantPath {
				t.Errorf("Path = %q, want %q", cfg.Path, wantPath)
			}
			if cfg.Source() != tt.wantSource {
				t.Errorf("Source() = %q, want %q", cfg.Source(), tt.wantSource)
			}
			if cfg.ProjectName != tt.wantProject {
				t.Errorf("ProjectName = %q, want %q", cfg.ProjectName, tt.wantProject)
			}
			if (cfg.BuildHook != nil) != tt.wantHook {
				t.Errorf("BuildHook = %v, wantHook %v", cfg.BuildHook, tt.wantHook)
			}
			if tt.wantKey != "" && cfg.Version[tt.wantKey] != tt.wantValue {
				t.Errorf("Version[%q] = %v, want %v", tt.wantKey, cfg.Version[tt.wantKey], tt.wantValue)
			}
			if cfg.Version == nil {
				t.Error("Version table should never be nil")
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"invalid yaml", map[string]string{FileName: "source: [vcs\n"}, "invalid config"},
		{"build hook not a table", map[string]string{FileName: "build-hook: VERSION\n"}, "option `build-hook` must be a table"},
		{"invalid toml", map[string]string{PyprojectFile: "[tool.hatch.version\n"}, "invalid config"},
		{"vcs hook not a table", map[string]string{PyprojectFile: "[tool.hatch.build.hooks]\nvcs = 1\n"}, "must be a table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutils.UnsetEnv(t, EnvConfigPath)
			root := t.TempDir()
			for name, content := range tt.files {
				testutils.WriteTempFile(t, root, name, content)
			}

			_, err := Load(root, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_BuildHookTypeError(t *testing.T) {
	testutils.UnsetEnv(t, EnvConfigPath)
	root := t.TempDir()
	testutils.WriteTempFile(t, root, FileName, "build-hook: [a, b]\n")

	_, err := Load(root, "")
	var typeErr *versionsource.ConfigTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected ConfigTypeError, got %v", err)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	path := testutils.WriteTempFile(t, other, "custom.yml", "fallback-version: 1.0.0\n")
	testutils.WriteTempFile(t, root, FileName, "fallback-version: 2.0.0\n")

	cfg, err := Load(root, path)
	checkError(t, err, false)
	if cfg.Version["fallback-version"] != "1.0.0" {
		t.Errorf("fallback-version = %v, want 1.0.0", cfg.Version["fallback-version"])
	}

	if _, err := Load(root, filepath.Join(other, "config.ini")); err == nil {
		t.Error("expected error for a missing file")
	}

	ini := testutils.WriteTempFile(t, other, "config.ini", "x=1")
	_, err = Load(root, ini)
	if err == nil || !strings.Contains(err.Error(), "unsupported config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_EnvPath(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	path := testutils.WriteTempFile(t, other, "hatch.toml", "[version]\ntag-pattern = \"(?P<version>.+)\"\n")

	t.Run("absolute path", func(t *testing.T) {
		t.Setenv(EnvConfigPath, path)
		cfg, err := Load(root, "")
		checkError(t, err, false)
		if cfg.Path != path {
			t.Errorf("Path = %q, want %q", cfg.Path, path)
		}
		if cfg.Version["tag-pattern"] != "(?P<version>.+)" {
			t.Errorf("tag-pattern = %v", cfg.Version["tag-pattern"])
		}
	})

	t.Run("relative path is taken from root", func(t *testing.T) {
		want := testutils.WriteTempFile(t, root, "ci.yaml", "tag-pattern: root-relative\n")
		t.Chdir(other)
		t.Setenv(EnvConfigPath, "ci.yaml")
		cfg, err := Load(root, "")
		checkError(t, err, false)
		if cfg.Path != want {
			t.Errorf("Path = %q, want %q", cfg.Path, want)
		}
		if cfg.Version["tag-pattern"] != "root-relative" {
			t.Errorf("tag-pattern = %v", cfg.Version["tag-pattern"])
		}
	})

	t.Run("traversal rejected", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "../outside/.vcsver.yaml")
		_, err := Load(root, "")
		if err == nil || !strings.Contains(err.Error(), "path traversal not allowed") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestConfig_VersionSourceConfig(t *testing.T) {
	t.Run("project name fills dist_name", func(t *testing.T) {
		cfg := &Config{Version: map[string]any{"source": "vcs"}, ProjectName: "my-pkg"}
		got := cfg.VersionSourceConfig()
		if got[versionsource.KeyDistName] != "my-pkg" {
			t.Errorf("dist_name = %v, want my-pkg", got[versionsource.KeyDistName])
		}
		if _, ok := cfg.Version[versionsource.KeyDistName]; ok {
			t.Error("VersionSourceConfig must not modify the loaded table")
		}
	})

	t.Run("explicit dist_name wins", func(t *testing.T) {
		cfg := &Config{Version: map[string]any{"dist_name": "explicit"}, ProjectName: "my-pkg"}
		if got := cfg.VersionSourceConfig()[versionsource.KeyDistName]; got != "explicit" {
			t.Errorf("dist_name = %v, want explicit", got)
		}
	})

	t.Run("no project name", func(t *testing.T) {
		cfg := Default()
		if _, ok := cfg.VersionSourceConfig()[versionsource.KeyDistName]; ok {
			t.Error("dist_name should stay unset")
		}
	})
}

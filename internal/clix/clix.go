// Package clix holds the per-invocation state shared by the CLI commands.
package clix

import (
	"fmt"
	"path/filepath"

	"github.com/indaco/vcsver/internal/config"
	"github.com/indaco/vcsver/internal/printer"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// Global flag names defined on the root command.
const (
	FlagRoot    = "root"
	FlagConfig  = "config"
	FlagVerbose = "verbose"
	FlagNoColor = "no-color"
)

// Project is the configuration and version source for the selected root.
type Project struct {
	Root   string
	Config *config.Config
	Source *versionsource.VersionSource
}

// ProjectRoot returns the absolute project root selected by --root.
func ProjectRoot(cmd *cli.Command) (string, error) {
	root := cmd.String(FlagRoot)
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root %q: %w", root, err)
	}
	return abs, nil
}

// LoadProject loads the configuration for the selected root and builds a
// VersionSource over it. A nil resolver selects the git resolver.
func LoadProject(cmd *cli.Command, resolver versionsource.Resolver) (*Project, error) {
	root, err := ProjectRoot(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfigFn(root, cmd.String(FlagConfig))
	if err != nil {
		return nil, err
	}

	if src := cfg.Source(); src != "" && src != versionsource.PluginName {
		return nil, fmt.Errorf("version source %q is not handled by %s, expected %q", src, cmd.Root().Name, versionsource.PluginName)
	}

	return &Project{
		Root:   root,
		Config: cfg,
		Source: versionsource.New(root, cfg.VersionSourceConfig(), versionsource.WithResolver(resolver)),
	}, nil
}

// Report prints the diagnostics for a decision on stderr: a deprecation
// warning when the legacy variable won, and the deciding signal in verbose mode.
func Report(cmd *cli.Command, d versionsource.Decision) {
	if versionsource.IsDeprecated(d.Source) {
		printer.Warn(fmt.Sprintf("%s is deprecated, use %s instead", d.Source, versionsource.EnvPretendVersion))
	}
	if cmd.Bool(FlagVerbose) {
		if d.Source == versionsource.SourceResolver {
			printer.Note("version resolved from git history")
		} else {
			printer.Note(fmt.Sprintf("version taken from %s", d.Source))
		}
	}
}

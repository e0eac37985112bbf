package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/indaco/vcsver/internal/clix"
	"github.com/indaco/vcsver/internal/config"
	"github.com/indaco/vcsver/internal/printer"
	"github.com/indaco/vcsver/internal/scm"
	"github.com/indaco/vcsver/internal/tui"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Input(title, description, value string, validate func(string) error) (string, error)
	Confirm(title, description string, value bool) (bool, error)
	Select(title, description string, options []string, value string) (string, error)
}

// TUIPrompter implements Prompter using the tui package.
type TUIPrompter struct{}

// Input shows a text prompt.
func (p *TUIPrompter) Input(title, description, value string, validate func(string) error) (string, error) {
	return tui.Input(title, description, value, validate)
}

// Confirm shows a yes/no confirmation prompt.
func (p *TUIPrompter) Confirm(title, description string, value bool) (bool, error) {
	return tui.Confirm(title, description, value)
}

// Select shows a single-select prompt.
func (p *TUIPrompter) Select(title, description string, options []string, value string) (string, error) {
	return tui.Select(title, description, options, value)
}

// interactiveFn is replaced in tests.
var interactiveFn = tui.IsInteractive

// Run returns the "init" command. A nil prompter uses the terminal UI.
func Run(prompter Prompter) *cli.Command {
	if prompter == nil {
		prompter = &TUIPrompter{}
	}
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a .vcsver.yaml configuration",
		UsageText: "vcsver init [--tag-pattern re] [--fallback-version v] [--version-file path] [--yes] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tag-pattern",
				Usage: "Regular expression extracting the version from tag names",
			},
			&cli.StringFlag{
				Name:  "fallback-version",
				Usage: "Version used when git history is unavailable",
			},
			&cli.StringFlag{
				Name:  "dist-name",
				Usage: "Distribution name used for HATCH_VCS_PRETEND_VERSION_FOR_<NAME>",
			},
			&cli.StringFlag{
				Name:  "version-scheme",
				Usage: "Numbering between tags (guess-next-dev, post-release, no-guess-dev, only-version)",
			},
			&cli.StringFlag{
				Name:  "version-file",
				Usage: "File the build hook records the version in",
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "Template for the version file ({version}, {version_tuple})",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not prompt, use flag values only",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration",
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "Prompt theme (base, base16, catppuccin, charm, dracula)",
				Value: tui.DefaultTheme,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(cmd, prompter)
		},
	}
}

func runInitCmd(cmd *cli.Command, prompter Prompter) error {
	root, err := clix.ProjectRoot(cmd)
	if err != nil {
		return err
	}

	target := filepath.Join(root, config.FileName)
	if _, err := os.Stat(target); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", target)
	}

	file := FromFlags(cmd)
	if !cmd.Bool("yes") && interactiveFn() {
		tui.SetTheme(cmd.String("theme"))
		if err := Prompt(prompter, file); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				printer.PrintWarning("Initialization aborted")
				return nil
			}
			return err
		}
	}

	if err := ValidateTagPattern(file.TagPattern); err != nil {
		return err
	}
	if scheme, ok := file.RawOptions[optionVersionScheme].(string); ok && !slices.Contains(versionSchemes, scheme) {
		return fmt.Errorf("unknown version scheme %q", scheme)
	}

	if err := config.SaveConfigFn(file, root); err != nil {
		return err
	}
	printer.PrintSuccess(fmt.Sprintf("Created %s", target))
	return nil
}

// FromFlags builds the configuration file from command flags.
func FromFlags(cmd *cli.Command) *config.File {
	file := &config.File{
		Source:          versionsource.PluginName,
		TagPattern:      cmd.String("tag-pattern"),
		FallbackVersion: cmd.String("fallback-version"),
		DistName:        cmd.String("dist-name"),
	}
	setVersionScheme(file, cmd.String("version-scheme"))
	if path := cmd.String("version-file"); path != "" {
		file.BuildHook = &config.BuildHookFile{
			VersionFile: path,
			Template:    cmd.String("template"),
		}
	}
	return file
}

// Prompt asks for each setting, starting from the values already in file.
func Prompt(p Prompter, file *config.File) error {
	var err error

	file.TagPattern, err = p.Input("Tag pattern",
		"Regular expression with a `version` group; leave empty for the default",
		file.TagPattern, ValidateTagPattern)
	if err != nil {
		return err
	}

	file.FallbackVersion, err = p.Input("Fallback version",
		"Used when the project is not a git checkout; leave empty to fail instead",
		file.FallbackVersion, nil)
	if err != nil {
		return err
	}

	scheme, _ := file.RawOptions[optionVersionScheme].(string)
	if scheme == "" {
		scheme = scm.SchemeGuessNextDev
	}
	scheme, err = p.Select("Version scheme",
		"How versions between tags are numbered",
		versionSchemes, scheme)
	if err != nil {
		return err
	}
	setVersionScheme(file, scheme)

	writeFile, err := p.Confirm("Record the version in a file at build time?", "", file.BuildHook != nil)
	if err != nil {
		return err
	}
	if !writeFile {
		file.BuildHook = nil
		return nil
	}

	hook := file.BuildHook
	if hook == nil {
		hook = &config.BuildHookFile{}
	}
	hook.VersionFile, err = p.Input("Version file",
		"Path relative to the project root, e.g. src/pkg/_version.py",
		hook.VersionFile, requireValue)
	if err != nil {
		return err
	}
	file.BuildHook = hook
	return nil
}

const optionVersionScheme = "version_scheme"

var versionSchemes = []string{scm.SchemeGuessNextDev, scm.SchemePostRelease, scm.SchemeNoGuessDev, scm.SchemeOnlyVersion}

// setVersionScheme records scheme in raw-options unless it is the default.
func setVersionScheme(file *config.File, scheme string) {
	if scheme == "" || scheme == scm.SchemeGuessNextDev {
		delete(file.RawOptions, optionVersionScheme)
		return
	}
	if file.RawOptions == nil {
		file.RawOptions = map[string]any{}
	}
	file.RawOptions[optionVersionScheme] = scheme
}

// ValidateTagPattern reports whether pattern compiles. An empty pattern selects the default.
func ValidateTagPattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("invalid tag pattern: %w", err)
	}
	return nil
}

func requireValue(s string) error {
	if s == "" {
		return errors.New("a value is required")
	}
	return nil
}

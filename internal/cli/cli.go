package cli

import (
	"context"

	"github.com/indaco/vcsver/internal/clix"
	"github.com/indaco/vcsver/internal/commands/doctor"
	"github.com/indaco/vcsver/internal/commands/env"
	"github.com/indaco/vcsver/internal/commands/initialize"
	"github.com/indaco/vcsver/internal/commands/options"
	"github.com/indaco/vcsver/internal/commands/show"
	"github.com/indaco/vcsver/internal/commands/write"
	"github.com/indaco/vcsver/internal/printer"
	"github.com/indaco/vcsver/internal/tui"
	"github.com/indaco/vcsver/internal/version"
	"github.com/indaco/vcsver/internal/versionsource"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command. A nil resolver selects the
// git resolver.
func New(resolver versionsource.Resolver) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "vcsver",
		Version:               "v" + version.GetVersion(),
		Usage:                 "Resolve a project's version from git tags and environment overrides",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    clix.FlagRoot,
				Aliases: []string{"r"},
				Usage:   "Project root",
				Value:   ".",
			},
			&urfavecli.StringFlag{
				Name:    clix.FlagConfig,
				Aliases: []string{"c"},
				Usage:   "Configuration file (.yaml, .yml or .toml)",
			},
			&urfavecli.BoolFlag{
				Name:        clix.FlagNoColor,
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
			&urfavecli.BoolFlag{
				Name:  clix.FlagVerbose,
				Usage: "Report which signal decided the version",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag || !tui.IsTTY())
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return show.Execute(ctx, cmd, resolver, false)
		},
		Commands: []*urfavecli.Command{
			show.Run(resolver),
			options.Run(),
			env.Run(),
			write.Run(resolver, nil),
			initialize.Run(nil),
			doctor.Run(resolver),
		},
	}
}

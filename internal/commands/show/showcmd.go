package show

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/indaco/vcsver/internal/clix"
	"github.com/indaco/vcsver/internal/tui"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(resolver versionsource.Resolver) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the resolved version",
		UsageText: "vcsver show [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the version data as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return Execute(ctx, cmd, resolver, cmd.Bool("json"))
		},
	}
}

// Execute resolves the version for the selected project and prints it.
// It also backs the root command's default action.
func Execute(ctx context.Context, cmd *cli.Command, resolver versionsource.Resolver, asJSON bool) error {
	project, err := clix.LoadProject(cmd, resolver)
	if err != nil {
		return err
	}

	var decision versionsource.Decision
	err = tui.Spin("Resolving version", func() error {
		var err error
		decision, err = project.Source.Decide(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to resolve version: %w", err)
	}

	clix.Report(cmd, decision)

	if asJSON {
		data, err := json.Marshal(decision.VersionData)
		if err != nil {
			return fmt.Errorf("failed to encode version data: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(decision.Version)
	return nil
}

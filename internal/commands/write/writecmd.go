package write

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/vcsver/internal/buildhook"
	"github.com/indaco/vcsver/internal/clix"
	"github.com/indaco/vcsver/internal/core"
	"github.com/indaco/vcsver/internal/printer"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// ErrNoBuildHook is returned when no version file is configured.
var ErrNoBuildHook = errors.New("no version file configured: set `version-file` in the build hook table")

// Run returns the "write" command.
func Run(resolver versionsource.Resolver, fs core.FileSystem) *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Resolve the version and record it in the configured version file",
		UsageText: "vcsver write",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runWriteCmd(ctx, cmd, resolver, fs)
		},
	}
}

func runWriteCmd(ctx context.Context, cmd *cli.Command, resolver versionsource.Resolver, fs core.FileSystem) error {
	project, err := clix.LoadProject(cmd, resolver)
	if err != nil {
		return err
	}

	hook := buildhook.New(project.Root, project.Config.BuildHook, fs)
	if !hook.Enabled() {
		return ErrNoBuildHook
	}
	// Surface configuration errors before running git.
	if _, err := hook.Target(); err != nil {
		return err
	}

	decision, err := project.Source.Decide(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve version: %w", err)
	}
	clix.Report(cmd, decision)

	result, err := hook.Write(ctx, decision.Version)
	if err != nil {
		return err
	}

	if !result.Changed() {
		printer.PrintInfo(fmt.Sprintf("%s already records %s", result.Path, result.Version))
		return nil
	}
	if result.Previous == "" {
		printer.PrintSuccess(fmt.Sprintf("Wrote %s to %s", result.Version, result.Path))
		return nil
	}
	printer.PrintSuccess(fmt.Sprintf("Updated %s from %s to %s", result.Path, result.Previous, result.Version))
	return nil
}

package doctor

import (
	"context"
	"fmt"

	"github.com/indaco/vcsver/internal/clix"
	"github.com/indaco/vcsver/internal/config"
	"github.com/indaco/vcsver/internal/printer"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(resolver versionsource.Resolver) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Aliases:   []string{"check"},
		Usage:     "Validate the configuration and try resolving the version",
		UsageText: "vcsver doctor [--skip-resolve]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-resolve",
				Usage: "Only validate the configuration, do not run git",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, resolver)
		},
	}
}

func runDoctorCmd(ctx context.Context, cmd *cli.Command, resolver versionsource.Resolver) error {
	root, err := clix.ProjectRoot(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFn(root, cmd.String(clix.FlagConfig))
	if err != nil {
		fmt.Println(printer.Status(false, false, fmt.Sprintf("Configuration: %v", err)))
		return fmt.Errorf("configuration could not be loaded")
	}

	if cfg.Path == "" {
		fmt.Println(printer.Status(true, false, "Configuration: none found, using defaults"))
	} else {
		fmt.Println(printer.Status(true, false, "Configuration: "+cfg.Path))
	}

	results, err := config.NewValidator(cfg, root).Validate(ctx)
	if err != nil {
		return err
	}

	if !cmd.Bool("skip-resolve") && !config.HasErrors(results) {
		results = append(results, resolveCheck(ctx, root, cfg, resolver))
	}

	for _, r := range results {
		fmt.Println(printer.Status(r.Passed, r.Warning, fmt.Sprintf("%s: %s", r.Category, r.Message)))
	}

	errorCount := config.ErrorCount(results)
	warningCount := config.WarningCount(results)
	fmt.Println()
	if errorCount > 0 {
		return fmt.Errorf("%d error(s), %d warning(s) found", errorCount, warningCount)
	}
	printer.PrintSuccess(fmt.Sprintf("No errors, %d warning(s)", warningCount))
	return nil
}

// resolveCheck resolves the version the way a build would.
func resolveCheck(ctx context.Context, root string, cfg *config.Config, resolver versionsource.Resolver) config.ValidationResult {
	src := versionsource.New(root, cfg.VersionSourceConfig(), versionsource.WithResolver(resolver))
	d, err := src.Decide(ctx)
	if err != nil {
		return config.ValidationResult{Category: "Resolve", Message: err.Error()}
	}

	msg := fmt.Sprintf("version %s", d.Version)
	if d.Source != versionsource.SourceResolver {
		msg += fmt.Sprintf(" (from %s)", d.Source)
	}
	return config.ValidationResult{
		Category: "Resolve",
		Passed:   true,
		Message:  msg,
		Warning:  versionsource.IsDeprecated(d.Source),
	}
}

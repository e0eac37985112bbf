package options

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vcsver/internal/clix"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Run returns the "options" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "options",
		Usage:     "Print the options handed to the git resolver",
		UsageText: "vcsver options [--format json|yaml]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json, yaml)",
				Value:   FormatJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runOptionsCmd(cmd)
		},
	}
}

func runOptionsCmd(cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("unsupported format %q: expected %s or %s", format, FormatJSON, FormatYAML)
	}

	// No resolver call happens here; nil keeps the default.
	project, err := clix.LoadProject(cmd, nil)
	if err != nil {
		return err
	}

	opts, err := project.Source.BuildResolverOptions()
	if err != nil {
		return err
	}

	out, err := Encode(opts, format)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// Encode renders resolver options in the given format with a trailing newline.
func Encode(opts versionsource.Options, format string) (string, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(opts)
		if err != nil {
			return "", fmt.Errorf("failed to encode options: %w", err)
		}
		return string(data), nil
	default:
		data, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode options: %w", err)
		}
		return string(data) + "\n", nil
	}
}

package env

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/vcsver/internal/clix"
	"github.com/indaco/vcsver/internal/printer"
	"github.com/indaco/vcsver/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// State is the status of one override variable.
type State struct {
	Name       string
	Value      string
	Set        bool
	Active     bool
	Deprecated bool
}

// Run returns the "env" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "env",
		Usage:     "List the override variables for this distribution in priority order",
		UsageText: "vcsver env",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runEnvCmd(cmd)
		},
	}
}

func runEnvCmd(cmd *cli.Command) error {
	project, err := clix.LoadProject(cmd, nil)
	if err != nil {
		return err
	}

	distName, err := project.Source.DistName()
	if err != nil {
		return err
	}

	fmt.Printf("Distribution: %s\n", printer.Bold(distName))
	for _, st := range Inspect(distName, os.LookupEnv) {
		fmt.Println(formatState(st))
	}
	return nil
}

// Inspect reports the state of each override variable for distName, in the
// order they are checked. At most one variable is marked active.
func Inspect(distName string, lookup versionsource.LookupEnvFunc) []State {
	names := versionsource.OverrideVariables(distName)
	states := make([]State, 0, len(names))
	active := false
	for _, name := range names {
		value, set := lookup(name)
		st := State{
			Name:       name,
			Value:      value,
			Set:        set,
			Deprecated: versionsource.IsDeprecated(name),
		}
		if set && !active {
			st.Active, active = true, true
		}
		states = append(states, st)
	}
	return states
}

func formatState(st State) string {
	var line string
	switch {
	case st.Active:
		line = printer.Success(fmt.Sprintf("%s=%q", st.Name, st.Value)) + " " + printer.Bold("(active)")
	case st.Set:
		line = fmt.Sprintf("%s=%q %s", st.Name, st.Value, printer.Faint("(shadowed)"))
	default:
		line = printer.Faint(st.Name + " (unset)")
	}
	if st.Deprecated {
		line += " " + printer.Warning("[deprecated]")
	}
	return line
}

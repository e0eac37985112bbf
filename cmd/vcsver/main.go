package main

import (
	"context"
	"os"

	"github.com/indaco/vcsver/internal/cli"
	"github.com/indaco/vcsver/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI runs the root command with the git resolver.
func runCLI(args []string) error {
	return cli.New(nil).Run(context.Background(), args)
}

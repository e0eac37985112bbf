package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout runs fn and returns everything it wrote to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	return capture(&os.Stdout, fn)
}

// CaptureStderr runs fn and returns everything it wrote to os.Stderr.
func CaptureStderr(fn func()) (string, error) {
	return capture(&os.Stderr, fn)
}

func capture(target **os.File, fn func()) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	orig := *target
	*target = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	defer func() { *target = orig }()
	fn()

	_ = w.Close()
	<-done
	_ = r.Close()
	return buf.String(), nil
}

// RunCLITest runs app with args from workDir, restoring the working
// directory afterwards. It fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, workDir string) {
	t.Helper()
	if err := RunCLI(t, app, args, workDir); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLI is RunCLITest without the failure on error.
func RunCLI(t *testing.T, app *cli.Command, args []string, workDir string) error {
	t.Helper()
	if workDir != "" {
		t.Chdir(workDir)
	}
	return app.Run(context.Background(), args)
}

// NewRootCommand wraps commands in a root command carrying the global flags
// the commands read from their lineage.
func NewRootCommand(commands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name: "vcsver",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Value: "."},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}},
			&cli.BoolFlag{Name: "verbose"},
			&cli.BoolFlag{Name: "no-color"},
		},
		Commands: commands,
	}
}

// IsolateProject clears the config and override variables that would leak
// into a test of the project at root, and returns root.
func IsolateProject(t *testing.T, root, distName string) string {
	t.Helper()
	UnsetEnv(t, "VCSVER_CONFIG")
	ClearOverrides(t,
		"HATCH_VCS_PRETEND_VERSION_FOR_"+normalize(distName),
		"HATCH_VCS_PRETEND_VERSION",
		"HATCH_VERSION_OVERRIDE",
	)
	return root
}

func normalize(name string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", "/", "_").Replace(name))
}

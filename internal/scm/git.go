package scm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/indaco/vcsver/internal/core"
)

// OSGitOperations implements core.GitOperations by shelling out to git.
type OSGitOperations struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewOSGitOperations creates a new OSGitOperations using exec.CommandContext.
func NewOSGitOperations() *OSGitOperations {
	return &OSGitOperations{
		execCommand: exec.CommandContext,
	}
}

// Verify OSGitOperations implements core.GitOperations.
var _ core.GitOperations = (*OSGitOperations)(nil)

// run executes git in dir and returns trimmed stdout. Failures carry git's
// stderr when it has anything to say.
func (g *OSGitOperations) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := g.execCommand(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &Error{
			Op:     "git " + args[0],
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (g *OSGitOperations) Describe(ctx context.Context, dir string, args ...string) (string, error) {
	return g.run(ctx, dir, append([]string{"describe"}, args...)...)
}

func (g *OSGitOperations) TopLevel(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, "rev-parse", "--show-toplevel")
}

func (g *OSGitOperations) CommitCount(ctx context.Context, dir string) (int, error) {
	out, err := g.run(ctx, dir, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", out, err)
	}
	return n, nil
}

func (g *OSGitOperations) ShortHash(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, "rev-parse", "--short", "HEAD")
}

func (g *OSGitOperations) IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := g.run(ctx, dir, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

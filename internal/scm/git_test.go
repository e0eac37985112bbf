package scm

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/indaco/vcsver/internal/testutils"
)

func TestOSGitOperations_Repository(t *testing.T) {
	repo := testutils.InitGitRepo(t)
	testutils.GitCommitFile(t, repo, "README.md", "one\n", "first")
	testutils.GitRun(t, repo, "tag", "v0.3.0")
	testutils.GitCommitFile(t, repo, "README.md", "two\n", "second")

	ctx := context.Background()
	git := NewOSGitOperations()

	top, err := git.TopLevel(ctx, repo)
	if err != nil {
		t.Fatalf("TopLevel() error: %v", err)
	}
	if !samePath(top, repo) {
		t.Errorf("TopLevel() = %q, want %q", top, repo)
	}

	count, err := git.CommitCount(ctx, repo)
	if err != nil || count != 2 {
		t.Errorf("CommitCount() = %d, %v; want 2", count, err)
	}

	out, err := git.Describe(ctx, repo, defaultDescribeArgs...)
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if !regexp.MustCompile(`^v0\.3\.0-1-g[0-9a-f]+$`).MatchString(out) {
		t.Errorf("Describe() = %q", out)
	}

	dirty, err := git.IsDirty(ctx, repo)
	if err != nil || dirty {
		t.Errorf("IsDirty() = %v, %v; want clean", dirty, err)
	}

	if err := os.WriteFile(filepath.Join(repo, "README.md"), []byte("three\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dirty, err = git.IsDirty(ctx, repo)
	if err != nil || !dirty {
		t.Errorf("IsDirty() = %v, %v; want dirty", dirty, err)
	}
}

func TestOSGitOperations_NotARepository(t *testing.T) {
	testutils.RequireGit(t)

	_, err := NewOSGitOperations().TopLevel(context.Background(), t.TempDir())
	if err == nil {
		// The temp dir may live inside a checkout; nothing to assert then.
		t.Skip("temporary directory is inside a git repository")
	}
	if _, ok := err.(*Error); !ok {
		t.Errorf("expected *Error, got %T", err)
	}
}

func TestResolver_RealRepository(t *testing.T) {
	repo := testutils.InitGitRepo(t)
	ctx := context.Background()
	r := NewResolver()

	testutils.GitCommitFile(t, repo, "a.txt", "a\n", "first")
	testutils.GitRun(t, repo, "tag", "v1.4.0")

	got, err := r.GetVersion(ctx, map[string]any{"root": repo})
	if err != nil {
		t.Fatalf("GetVersion() error: %v", err)
	}
	if got != "1.4.0" {
		t.Errorf("GetVersion() on tag = %q, want %q", got, "1.4.0")
	}

	testutils.GitCommitFile(t, repo, "b.txt", "b\n", "second")
	got, err = r.GetVersion(ctx, map[string]any{"root": repo, "local_scheme": "no-local-version"})
	if err != nil {
		t.Fatalf("GetVersion() error: %v", err)
	}
	if got != "1.4.1.dev1" {
		t.Errorf("GetVersion() after commit = %q, want %q", got, "1.4.1.dev1")
	}
}

package show

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/vcsver/internal/testutils"
	"github.com/indaco/vcsver/internal/versionsource"
)

func fixedResolver(version string, calls *int) versionsource.Resolver {
	return versionsource.ResolverFunc(func(_ context.Context, opts versionsource.Options) (string, error) {
		if calls != nil {
			*calls++
		}
		return version, nil
	})
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	return testutils.IsolateProject(t, root, filepath.Base(root))
}

func TestShowCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"show"}, "1.2.3"},
		{"json", []string{"show", "--json"}, `{"version":"1.2.3"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t)
			app := testutils.NewRootCommand(Run(fixedResolver("1.2.3", nil)))

			out, err := testutils.CaptureStdout(func() {
				testutils.RunCLITest(t, app, append([]string{"vcsver", "--root", root}, tt.args...), "")
			})
			if err != nil {
				t.Fatal(err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestShowCmd_OverrideSkipsResolver(t *testing.T) {
	root := newProject(t)
	t.Setenv(versionsource.EnvPretendVersion, "9.0.0")

	calls := 0
	app := testutils.NewRootCommand(Run(fixedResolver("1.2.3", &calls)))

	out, _ := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, app, []string{"vcsver", "--root", root, "show"}, "")
	})
	if strings.TrimSpace(out) != "9.0.0" {
		t.Errorf("output = %q, want 9.0.0", out)
	}
	if calls != 0 {
		t.Errorf("resolver called %d times, want 0", calls)
	}
}

func TestShowCmd_Diagnostics(t *testing.T) {
	t.Run("legacy override warns", func(t *testing.T) {
		root := newProject(t)
		t.Setenv(versionsource.EnvVersionOverride, "0.9.0")
		app := testutils.NewRootCommand(Run(fixedResolver("1.2.3", nil)))

		var stdout string
		stderr, _ := testutils.CaptureStderr(func() {
			stdout, _ = testutils.CaptureStdout(func() {
				testutils.RunCLITest(t, app, []string{"vcsver", "--root", root, "show"}, "")
			})
		})
		if strings.TrimSpace(stdout) != "0.9.0" {
			t.Errorf("stdout = %q, want 0.9.0", stdout)
		}
		if !strings.Contains(stderr, "HATCH_VERSION_OVERRIDE is deprecated") {
			t.Errorf("stderr = %q, want a deprecation warning", stderr)
		}
	})

	t.Run("default path is silent", func(t *testing.T) {
		root := newProject(t)
		app := testutils.NewRootCommand(Run(fixedResolver("1.2.3", nil)))

		stderr, _ := testutils.CaptureStderr(func() {
			_, _ = testutils.CaptureStdout(func() {
				testutils.RunCLITest(t, app, []string{"vcsver", "--root", root, "show"}, "")
			})
		})
		if stderr != "" {
			t.Errorf("stderr = %q, want nothing", stderr)
		}
	})

	t.Run("verbose names the signal", func(t *testing.T) {
		root := newProject(t)
		t.Setenv(versionsource.EnvPretendVersion, "3.0.0")
		app := testutils.NewRootCommand(Run(fixedResolver("1.2.3", nil)))

		stderr, _ := testutils.CaptureStderr(func() {
			_, _ = testutils.CaptureStdout(func() {
				testutils.RunCLITest(t, app, []string{"vcsver", "--root", root, "--verbose", "show"}, "")
			})
		})
		if !strings.Contains(stderr, "version taken from HATCH_VCS_PRETEND_VERSION") {
			t.Errorf("stderr = %q", stderr)
		}
	})
}

func TestShowCmd_ResolverError(t *testing.T) {
	root := newProject(t)
	want := errors.New("no tags")
	resolver := versionsource.ResolverFunc(func(context.Context, versionsource.Options) (string, error) {
		return "", want
	})

	err := testutils.RunCLI(t, testutils.NewRootCommand(Run(resolver)), []string{"vcsver", "--root", root, "show"}, "")
	if !errors.Is(err, want) {
		t.Errorf("error = %v, want it to wrap %v", err, want)
	}
}

func TestShowCmd_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"other source", "source: regex\n", `version source "regex" is not handled`},
		{"type error", "tag-pattern: [1]\n", "option `tag-pattern` must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t)
			testutils.WriteTempFile(t, root, ".vcsver.yaml", tt.content)

			err := testutils.RunCLI(t, testutils.NewRootCommand(Run(fixedResolver("1.0.0", nil))), []string{"vcsver", "--root", root, "show"}, "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestShowCmd_ConfigReachesResolver(t *testing.T) {
	root := newProject(t)
	testutils.WriteTempFile(t, root, ".vcsver.yaml", "tag-pattern: '^v(?P<version>.+)$'\nraw-options:\n  local_scheme: no-local-version\n  write_to: v.py\n")

	var got versionsource.Options
	resolver := versionsource.ResolverFunc(func(_ context.Context, opts versionsource.Options) (string, error) {
		got = opts
		return "1.0.0", nil
	})

	_, _ = testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, testutils.NewRootCommand(Run(resolver)), []string{"vcsver", "--root", root, "show"}, "")
	})

	if got["tag_regex"] != "^v(?P<version>.+)$" {
		t.Errorf("tag_regex = %v", got["tag_regex"])
	}
	if got["local_scheme"] != "no-local-version" {
		t.Errorf("local_scheme = %v", got["local_scheme"])
	}
	if got["root"] != root {
		t.Errorf("root = %v, want %v", got["root"], root)
	}
	if _, ok := got["write_to"]; ok {
		t.Error("write_to must not reach the resolver")
	}
}

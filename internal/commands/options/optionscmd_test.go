package options

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vcsver/internal/testutils"
)

func TestOptionsCmd(t *testing.T) {
	root := t.TempDir()
	testutils.IsolateProject(t, root, filepath.Base(root))
	testutils.WriteTempFile(t, root, "pyproject.toml", `[tool.hatch.version]
source = "vcs"
tag-pattern = "^rel-(?P<version>.+)$"
fallback-version = "0.0.0"

[tool.hatch.version.raw-options]
version_scheme = "post-release"
write_to = "pkg/_version.py"
`)

	t.Run("json", func(t *testing.T) {
		out, err := testutils.CaptureStdout(func() {
			testutils.RunCLITest(t, testutils.NewRootCommand(Run()), []string{"vcsver", "--root", root, "options"}, "")
		})
		if err != nil {
			t.Fatal(err)
		}

		var got map[string]any
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		want := map[string]any{
			"root":             root,
			"tag_regex":        "^rel-(?P<version>.+)$",
			"fallback_version": "0.0.0",
			"version_scheme":   "post-release",
		}
		if len(got) != len(want) {
			t.Errorf("got %d options, want %d: %v", len(got), len(want), got)
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("%s = %v, want %v", k, got[k], v)
			}
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := testutils.CaptureStdout(func() {
			testutils.RunCLITest(t, testutils.NewRootCommand(Run()), []string{"vcsver", "--root", root, "options", "--format", "yaml"}, "")
		})
		if err != nil {
			t.Fatal(err)
		}

		var got map[string]any
		if err := yaml.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output is not YAML: %v\n%s", err, out)
		}
		if got["version_scheme"] != "post-release" {
			t.Errorf("version_scheme = %v", got["version_scheme"])
		}
		if _, ok := got["write_to"]; ok {
			t.Error("write_to should be removed")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		err := testutils.RunCLI(t, testutils.NewRootCommand(Run()), []string{"vcsver", "--root", root, "options", "-f", "xml"}, "")
		if err == nil || !strings.Contains(err.Error(), "unsupported format") {
			t.Errorf("error = %v", err)
		}
	})
}

func TestOptionsCmd_TypeError(t *testing.T) {
	root := t.TempDir()
	testutils.IsolateProject(t, root, filepath.Base(root))
	testutils.WriteTempFile(t, root, ".vcsver.yaml", "raw-options: nope\n")

	err := testutils.RunCLI(t, testutils.NewRootCommand(Run()), []string{"vcsver", "--root", root, "options"}, "")
	if err == nil || err.Error() != "option `raw-options` must be a table" {
		t.Errorf("error = %v", err)
	}
}

func TestEncode_SortedJSON(t *testing.T) {
	out, err := Encode(map[string]any{"b": 1, "a": "x"}, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if out != "{\n  \"a\": \"x\",\n  \"b\": 1\n}\n" {
		t.Errorf("Encode() = %q", out)
	}
}

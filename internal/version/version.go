package version

import (
	"runtime/debug"
	"strings"
)

// Build-time variables injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the tool version: the ldflags value when set, the
// module version for `go install` builds, otherwise "dev" with the VCS
// revision when known.
func GetVersion() string {
	if Version != "dev" {
		return strings.TrimPrefix(Version, "v")
	}

	bi, ok := readBuildInfo()
	if !ok {
		return Version
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}

	revision := Commit
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			revision = s.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		}
	}
	if revision == "none" {
		return Version
	}
	return Version + "+" + revision
}

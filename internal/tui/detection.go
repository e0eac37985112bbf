package tui

import (
	"os"

	"golang.org/x/term"
)

// ciVariables are environment variables set by common CI providers.
var ciVariables = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"CIRCLECI",               // CircleCI
	"JENKINS_HOME",           // Jenkins
	"BUILDKITE",              // Buildkite
	"BITBUCKET_BUILD_NUMBER", // Bitbucket Pipelines
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure Pipelines
	"READTHEDOCS",            // Read the Docs builds
	"CIBUILDWHEEL",           // cibuildwheel
}

// InCI reports whether one of the known CI variables is set.
func InCI() bool {
	for _, env := range ciVariables {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

// IsInteractive reports whether prompts and spinners may be shown: stdout
// is a terminal and the process is not running under CI.
func IsInteractive() bool {
	return IsTTY() && !InCI()
}

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

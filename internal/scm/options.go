package scm

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// DefaultTagRegex extracts the version from tags such as "v1.2.3",
// "1.2" or "mypkg-1.0.0rc1".
const DefaultTagRegex = `^(?:[\w-]+-)?(?P<version>[vV]?\d+(?:\.\d+){0,2}[^\+]*)(?:\+.*)?$`

// Version schemes.
const (
	SchemeGuessNextDev = "guess-next-dev"
	SchemePostRelease  = "post-release"
	SchemeNoGuessDev   = "no-guess-dev"
	SchemeOnlyVersion  = "only-version"
)

// Local schemes.
const (
	LocalNodeAndDate      = "node-and-date"
	LocalNodeAndTimestamp = "node-and-timestamp"
	LocalNoLocalVersion   = "no-local-version"
)

var (
	versionSchemes = []string{SchemeGuessNextDev, SchemePostRelease, SchemeNoGuessDev, SchemeOnlyVersion}
	localSchemes   = []string{LocalNodeAndDate, LocalNodeAndTimestamp, LocalNoLocalVersion}

	defaultDescribeArgs = []string{"--tags", "--long", "--dirty", "--match", "*[0-9]*"}
)

// settings is the validated form of the options map.
type settings struct {
	root            string
	tagRegex        *regexp.Regexp
	fallbackVersion string
	versionScheme   string
	localScheme     string
	describeArgs    []string
	searchParents   bool
}

// parseSettings validates opts. A relative root is resolved against the
// directory of relative_to when set, else against baseDir when set, else
// against the working directory.
func parseSettings(opts map[string]any, baseDir string) (*settings, error) {
	root, err := stringOpt(opts, "root", ".")
	if err != nil {
		return nil, err
	}
	relativeTo, err := stringOpt(opts, "relative_to", "")
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(root) {
		switch {
		case relativeTo != "":
			root = filepath.Join(filepath.Dir(relativeTo), root)
		case baseDir != "":
			root = filepath.Join(baseDir, root)
		}
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	pattern, err := stringOpt(opts, "tag_regex", DefaultTagRegex)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid tag_regex %q: %w", pattern, err)
	}

	fallback, err := stringOpt(opts, "fallback_version", "")
	if err != nil {
		return nil, err
	}

	versionScheme, err := stringOpt(opts, "version_scheme", SchemeGuessNextDev)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(versionSchemes, versionScheme) {
		return nil, fmt.Errorf("unknown version_scheme %q (available: %s)", versionScheme, strings.Join(versionSchemes, ", "))
	}

	localScheme, err := stringOpt(opts, "local_scheme", LocalNodeAndDate)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(localSchemes, localScheme) {
		return nil, fmt.Errorf("unknown local_scheme %q (available: %s)", localScheme, strings.Join(localSchemes, ", "))
	}

	describeArgs, err := describeOpt(opts)
	if err != nil {
		return nil, err
	}

	searchParents := false
	if raw, ok := opts["search_parent_directories"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("option %q must be a boolean", "search_parent_directories")
		}
		searchParents = b
	}

	return &settings{
		root:            root,
		tagRegex:        re,
		fallbackVersion: fallback,
		versionScheme:   versionScheme,
		localScheme:     localScheme,
		describeArgs:    describeArgs,
		searchParents:   searchParents,
	}, nil
}

func stringOpt(opts map[string]any, key, def string) (string, error) {
	raw, ok := opts[key]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("option %q must be a string", key)
	}
	return s, nil
}

// describeOpt reads git_describe_command, given either as a command line or
// as a list of arguments. A leading "git describe" is dropped.
func describeOpt(opts map[string]any) ([]string, error) {
	raw, ok := opts["git_describe_command"]
	if !ok || raw == nil {
		return slices.Clone(defaultDescribeArgs), nil
	}

	var args []string
	switch v := raw.(type) {
	case string:
		args = strings.Fields(v)
	case []string:
		args = slices.Clone(v)
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("option %q must contain only strings", "git_describe_command")
			}
			args = append(args, s)
		}
	default:
		return nil, fmt.Errorf("option %q must be a string or a list of strings", "git_describe_command")
	}

	if len(args) > 0 && args[0] == "git" {
		args = args[1:]
	}
	if len(args) > 0 && args[0] == "describe" {
		args = args[1:]
	}
	return args, nil
}

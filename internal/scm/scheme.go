package scm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/indaco/vcsver/internal/semver"
)

// untaggedBase is the version assumed for history without any tag.
const untaggedBase = "0.0"

var trailingNumber = regexp.MustCompile(`\d+$`)

// format turns the repository state into a version string.
func (cfg *settings) format(state repoState, now time.Time) (string, error) {
	base := untaggedBase
	if state.tag != "" {
		v, err := cfg.tagVersion(state.tag)
		if err != nil {
			return "", err
		}
		base = v
	}

	if state.exact() {
		return base, nil
	}

	public := cfg.publicVersion(base, state.distance)
	local := cfg.localVersion(state, now)
	if local == "" {
		return public, nil
	}
	return public + "+" + local, nil
}

// tagVersion extracts the version from a tag name: the "version" group if
// the pattern has one, else the first group, else the whole match.
func (cfg *settings) tagVersion(tag string) (string, error) {
	m := cfg.tagRegex.FindStringSubmatch(tag)
	if m == nil {
		return "", fmt.Errorf("%w: tag %q does not match tag_regex %q", ErrNoVersion, tag, cfg.tagRegex.String())
	}

	v := m[0]
	if i := cfg.tagRegex.SubexpIndex("version"); i > 0 {
		v = m[i]
	} else if len(m) > 1 {
		v = m[1]
	}

	v = strings.TrimLeft(v, "vV")
	if v == "" {
		return "", fmt.Errorf("%w: tag %q yields an empty version", ErrNoVersion, tag)
	}
	return v, nil
}

func (cfg *settings) publicVersion(base string, distance int) string {
	switch cfg.versionScheme {
	case SchemePostRelease:
		return fmt.Sprintf("%s.post%d", base, distance)
	case SchemeNoGuessDev:
		return fmt.Sprintf("%s.post1.dev%d", base, distance)
	case SchemeOnlyVersion:
		return base
	default:
		return fmt.Sprintf("%s.dev%d", GuessNext(base), distance)
	}
}

func (cfg *settings) localVersion(state repoState, now time.Time) string {
	switch cfg.localScheme {
	case LocalNoLocalVersion:
		return ""
	case LocalNodeAndTimestamp:
		return nodeLocal(state, now.UTC().Format("20060102150405"))
	default:
		return nodeLocal(state, now.UTC().Format("20060102"))
	}
}

func nodeLocal(state repoState, stamp string) string {
	local := "g" + state.node
	if state.dirty {
		local += ".d" + stamp
	}
	return local
}

// GuessNext returns the release that the next commit after version is
// expected to become. Semantic versions go through semver.BumpNext; other
// versions have their trailing number incremented.
func GuessNext(version string) string {
	if v, err := semver.ParseVersion(version); err == nil {
		if next, err := semver.BumpNext(v); err == nil {
			return next.String()
		}
	}

	loc := trailingNumber.FindStringIndex(version)
	if loc == nil {
		return version + ".1"
	}
	n, err := strconv.Atoi(version[loc[0]:loc[1]])
	if err != nil {
		return version + ".1"
	}
	return version[:loc[0]] + strconv.Itoa(n+1)
}

package versionfile

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPythonTemplate is written to .py files when no template is configured.
const DefaultPythonTemplate = `# file generated by vcsver
# don't change, don't track in version control
__all__ = ["__version__", "__version_tuple__", "version", "version_tuple"]

__version__ = version = {version!r}
__version_tuple__ = version_tuple = {version_tuple!r}
`

// Render expands {version}, {version!r}, {version_tuple} and
// {version_tuple!r} in tmpl. The !r forms produce Python literals.
func Render(tmpl, version string) string {
	tuple := VersionTuple(version)
	r := strings.NewReplacer(
		"{version!r}", pyQuote(version),
		"{version_tuple!r}", tuple,
		"{version_tuple}", tuple,
		"{version}", version,
	)
	return r.Replace(tmpl)
}

// VersionTuple formats version as a Python tuple literal: release numbers
// become ints, other parts strings, and the local segment is the last item.
// A pre-release marker glued to the last release number is split off, so
// "2.0.0rc1" becomes (2, 0, 0, 'rc1') and "1.2.3.dev4+gabc" becomes
// (1, 2, 3, 'dev4', 'gabc').
func VersionTuple(version string) string {
	public, local, hasLocal := strings.Cut(version, "+")

	var items []string
	release := true
	for _, part := range strings.Split(public, ".") {
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			items = append(items, strconv.Itoa(n))
			continue
		}
		if release {
			release = false
			digits := leadingDigits(part)
			if n, err := strconv.Atoi(digits); err == nil {
				items = append(items, strconv.Itoa(n))
				part = part[len(digits):]
			}
		}
		items = append(items, pyQuote(part))
	}
	if hasLocal && local != "" {
		items = append(items, pyQuote(local))
	}

	if len(items) == 1 {
		return fmt.Sprintf("(%s,)", items[0])
	}
	return "(" + strings.Join(items, ", ") + ")"
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

// pyQuote returns s as a single-quoted Python string literal.
func pyQuote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

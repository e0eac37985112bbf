package versionsource

import "strings"

// Environment variables consulted before the resolver, most specific first.
const (
	EnvPretendVersionForPrefix = "HATCH_VCS_PRETEND_VERSION_FOR_"
	EnvPretendVersion          = "HATCH_VCS_PRETEND_VERSION"
	EnvVersionOverride         = "HATCH_VERSION_OVERRIDE" // deprecated
)

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

var distNameReplacer = strings.NewReplacer("-", "_", ".", "_", "/", "_")

// NormalizeDistName turns a distribution name into the suffix used in
// HATCH_VCS_PRETEND_VERSION_FOR_<NAME>.
func NormalizeDistName(name string) string {
	return strings.ToUpper(distNameReplacer.Replace(name))
}

// OverrideVariables returns the override variables for distName in the
// order they are checked.
func OverrideVariables(distName string) []string {
	return []string{
		EnvPretendVersionForPrefix + NormalizeDistName(distName),
		EnvPretendVersion,
		EnvVersionOverride,
	}
}

// LookupOverride returns the first override variable that is set, and its
// value. An empty value still counts as set.
func LookupOverride(distName string, lookup LookupEnvFunc) (name, value string, ok bool) {
	for _, name := range OverrideVariables(distName) {
		if value, ok := lookup(name); ok {
			return name, value, true
		}
	}
	return "", "", false
}

// IsDeprecated reports whether the override variable name is kept only for
// backward compatibility.
func IsDeprecated(name string) bool {
	return name == EnvVersionOverride
}

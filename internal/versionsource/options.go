package versionsource

import "fmt"

// Options is the option set handed to a Resolver. Keys follow the
// resolver's own naming (root, tag_regex, fallback_version, ...).
type Options = map[string]any

// Keys written or removed by BuildResolverOptions.
const (
	OptionRoot            = "root"
	OptionTagRegex        = "tag_regex"
	OptionFallbackVersion = "fallback_version"
	OptionWriteTo         = "write_to"
	OptionWriteToTemplate = "write_to_template"
)

// deepCopy copies nested tables and arrays so the result shares no mutable
// state with v. Tables with non-string keys come back keyed by string.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// copyOptions returns a deep copy of opts.
func copyOptions(opts Options) Options {
	if opts == nil {
		return Options{}
	}
	return deepCopy(opts).(map[string]any)
}

package versionsource

import "fmt"

// ConfigTypeError reports a configuration option whose value has the wrong type.
type ConfigTypeError struct {
	// Option is the configuration key, e.g. "tag-pattern".
	Option string

	// Kind is the expected kind of value: "string" or "table".
	Kind string
}

func (e *ConfigTypeError) Error() string {
	return fmt.Sprintf("option `%s` must be a %s", e.Option, e.Kind)
}

// Option kinds used in ConfigTypeError.
const (
	KindString = "string"
	KindTable  = "table"
)

// StringOption reads key from cfg, returning def when it is absent and a
// *ConfigTypeError when it is not a string.
func StringOption(cfg map[string]any, key, def string) (string, error) {
	raw, ok := cfg[key]
	if !ok {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ConfigTypeError{Option: key, Kind: KindString}
	}
	return s, nil
}

// TableOption reads key from cfg as a table. An absent key yields an empty
// table. Tables decoded with non-string keys are normalized to string keys.
func TableOption(cfg map[string]any, key string) (map[string]any, error) {
	raw, ok := cfg[key]
	if !ok {
		return map[string]any{}, nil
	}
	switch t := raw.(type) {
	case map[string]any:
		return t, nil
	case map[any]any:
		return deepCopy(t).(map[string]any), nil
	default:
		return nil, &ConfigTypeError{Option: key, Kind: KindTable}
	}
}

package versionfile

import (
	"fmt"
	"strings"
)

// getNested retrieves a value using dot notation.
// Example: "tool.poetry.version" reads obj["tool"]["poetry"]["version"].
func getNested(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)
	for i, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}
		value, exists := m[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}
		current = value
	}
	return current, nil
}

// setNested sets a value using dot notation, creating intermediate tables.
func setNested(obj map[string]any, field string, value any) error {
	if field == "" {
		return fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := obj
	for i, part := range parts[:len(parts)-1] {
		next, exists := current[part]
		if !exists {
			m := make(map[string]any)
			current[part] = m
			current = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i+1], "."), part)
		}
		current = m
	}

	current[parts[len(parts)-1]] = value
	return nil
}

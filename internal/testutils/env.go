package testutils

import (
	"os"
	"testing"
)

// UnsetEnv removes key for the rest of the test and restores it afterwards.
func UnsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
}

// ClearOverrides unsets every pretend-version variable that could leak in
// from the environment running the tests.
func ClearOverrides(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		UnsetEnv(t, key)
	}
}

// WriteTempFile writes content to dir/name and returns the full path.
func WriteTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := dir + string(os.PathSeparator) + name
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

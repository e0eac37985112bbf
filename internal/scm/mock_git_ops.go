package scm

import (
	"context"

	"github.com/indaco/vcsver/internal/core"
)

// MockGitOperations is a mock implementation of core.GitOperations for testing.
type MockGitOperations struct {
	DescribeFn    func(dir string, args ...string) (string, error)
	TopLevelFn    func(dir string) (string, error)
	CommitCountFn func(dir string) (int, error)
	ShortHashFn   func(dir string) (string, error)
	IsDirtyFn     func(dir string) (bool, error)
}

// Verify MockGitOperations implements core.GitOperations.
var _ core.GitOperations = (*MockGitOperations)(nil)

// Describe implements core.GitOperations.
func (m *MockGitOperations) Describe(_ context.Context, dir string, args ...string) (string, error) {
	if m.DescribeFn != nil {
		return m.DescribeFn(dir, args...)
	}
	return "", nil
}

// TopLevel implements core.GitOperations. It defaults to dir itself.
func (m *MockGitOperations) TopLevel(_ context.Context, dir string) (string, error) {
	if m.TopLevelFn != nil {
		return m.TopLevelFn(dir)
	}
	return dir, nil
}

// CommitCount implements core.GitOperations.
func (m *MockGitOperations) CommitCount(_ context.Context, dir string) (int, error) {
	if m.CommitCountFn != nil {
		return m.CommitCountFn(dir)
	}
	return 0, nil
}

// ShortHash implements core.GitOperations.
func (m *MockGitOperations) ShortHash(_ context.Context, dir string) (string, error) {
	if m.ShortHashFn != nil {
		return m.ShortHashFn(dir)
	}
	return "", nil
}

// IsDirty implements core.GitOperations.
func (m *MockGitOperations) IsDirty(_ context.Context, dir string) (bool, error) {
	if m.IsDirtyFn != nil {
		return m.IsDirtyFn(dir)
	}
	return false, nil
}

package core

import "context"

// GitOperations is the subset of git plumbing needed to infer a version
// from repository state. Every call runs inside dir.
type GitOperations interface {
	// Describe runs git describe with the given arguments and returns its
	// trimmed output.
	Describe(ctx context.Context, dir string, args ...string) (string, error)

	// TopLevel returns the absolute path of the working tree containing dir.
	TopLevel(ctx context.Context, dir string) (string, error)

	// CommitCount returns the number of commits reachable from HEAD.
	CommitCount(ctx context.Context, dir string) (int, error)

	// ShortHash returns the abbreviated hash of HEAD.
	ShortHash(ctx context.Context, dir string) (string, error)

	// IsDirty reports whether tracked files have uncommitted changes.
	IsDirty(ctx context.Context, dir string) (bool, error)
}

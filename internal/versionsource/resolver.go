package versionsource

import (
	"context"

	"github.com/indaco/vcsver/internal/scm"
)

// Resolver infers a version from repository state.
type Resolver interface {
	GetVersion(ctx context.Context, opts Options) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, opts Options) (string, error)

func (f ResolverFunc) GetVersion(ctx context.Context, opts Options) (string, error) {
	return f(ctx, opts)
}

// DefaultResolver returns the git-backed resolver. Relative roots in the
// resolver options are taken relative to baseDir.
func DefaultResolver(baseDir string) Resolver {
	return scm.NewResolver(scm.WithBaseDir(baseDir))
}

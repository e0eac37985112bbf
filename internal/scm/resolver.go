// Package scm infers a version string from git metadata: the closest
// reachable tag, the number of commits since that tag and whether the
// working tree is dirty.
package scm

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/indaco/vcsver/internal/core"
)

// Resolver computes versions from a git working tree.
type Resolver struct {
	git     core.GitOperations
	now     func() time.Time
	baseDir string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseDir sets the directory a relative root option is resolved
// against when relative_to is not given. Without it the working directory
// is used.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) {
		r.baseDir = dir
	}
}

// NewResolver creates a Resolver backed by the git binary.
func NewResolver(opts ...Option) *Resolver {
	return NewResolverWithOps(nil, opts...)
}

// NewResolverWithOps creates a Resolver with custom git operations.
// This constructor enables dependency injection for testing.
func NewResolverWithOps(git core.GitOperations, opts ...Option) *Resolver {
	if git == nil {
		git = NewOSGitOperations()
	}
	r := &Resolver{git: git, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// repoState is what the working tree says about the current commit.
type repoState struct {
	tag      string // empty when no tag is reachable
	distance int
	node     string
	dirty    bool
}

func (s repoState) exact() bool {
	return s.tag != "" && s.distance == 0 && !s.dirty
}

// GetVersion returns the version for the repository described by opts.
// When the repository cannot be inspected, fallback_version is returned if
// configured.
func (r *Resolver) GetVersion(ctx context.Context, opts map[string]any) (string, error) {
	cfg, err := parseSettings(opts, r.baseDir)
	if err != nil {
		return "", err
	}

	state, err := r.inspect(ctx, cfg)
	if err != nil {
		if cfg.fallbackVersion != "" {
			return cfg.fallbackVersion, nil
		}
		return "", err
	}

	return cfg.format(state, r.now())
}

func (r *Resolver) inspect(ctx context.Context, cfg *settings) (repoState, error) {
	top, err := r.git.TopLevel(ctx, cfg.root)
	if err != nil {
		return repoState{}, fmt.Errorf("%w: %s is not inside a git repository: %w", ErrNoVersion, cfg.root, err)
	}
	if !cfg.searchParents && !samePath(top, cfg.root) {
		return repoState{}, fmt.Errorf("%w: %s is not the top level of its git repository (%s); set search_parent_directories to allow it",
			ErrNoVersion, cfg.root, top)
	}

	out, err := r.git.Describe(ctx, cfg.root, cfg.describeArgs...)
	if err == nil {
		state := parseDescribe(out)
		if state.node == "" {
			if state.node, err = r.git.ShortHash(ctx, cfg.root); err != nil {
				return repoState{}, err
			}
		}
		return state, nil
	}

	// No reachable tag: count every commit instead.
	count, cerr := r.git.CommitCount(ctx, cfg.root)
	if cerr != nil {
		return repoState{}, fmt.Errorf("%w: no commits in %s: %w", ErrNoVersion, cfg.root, cerr)
	}
	node, err := r.git.ShortHash(ctx, cfg.root)
	if err != nil {
		return repoState{}, err
	}
	dirty, err := r.git.IsDirty(ctx, cfg.root)
	if err != nil {
		return repoState{}, err
	}
	return repoState{distance: count, node: node, dirty: dirty}, nil
}

var describeRe = regexp.MustCompile(`^(.+)-(\d+)-g([0-9a-fA-F]+)$`)

// parseDescribe splits "<tag>-<distance>-g<hash>[-dirty]". Output without
// the long suffix is taken as an exact tag.
func parseDescribe(out string) repoState {
	var state repoState
	if trimmed, ok := strings.CutSuffix(out, "-dirty"); ok {
		state.dirty = true
		out = trimmed
	}

	m := describeRe.FindStringSubmatch(out)
	if m == nil {
		state.tag = out
		return state
	}
	state.tag = m[1]
	state.distance, _ = strconv.Atoi(m[2])
	state.node = m[3]
	return state
}

func samePath(a, b string) bool {
	if ea, err := filepath.EvalSymlinks(a); err == nil {
		a = ea
	}
	if eb, err := filepath.EvalSymlinks(b); err == nil {
		b = eb
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

package versionsource

import (
	"context"
	"os"
	"path/filepath"
)

// PluginName is the name the host build tool uses to select this source.
const PluginName = "vcs"

// SourceResolver is the Decision.Source value when no override was set.
const SourceResolver = "scm"

// Configuration keys read by VersionSource.
const (
	KeyTagPattern      = "tag-pattern"
	KeyFallbackVersion = "fallback-version"
	KeyRawOptions      = "raw-options"
	KeyDistName        = "dist_name"
)

// Config is the version-source table supplied by the host build tool.
type Config = map[string]any

// VersionData is the value returned to the host build tool.
type VersionData struct {
	Version string `json:"version" yaml:"version"`
}

// Decision is a VersionData together with the signal that produced it.
type Decision struct {
	VersionData

	// Source is the environment variable that supplied the version, or
	// SourceResolver.
	Source string `json:"source" yaml:"source"`
}

// VersionSource resolves the version of one distribution. Instances are
// built per build invocation and are not safe for concurrent use.
type VersionSource struct {
	root      string
	config    Config
	resolver  Resolver
	lookupEnv LookupEnvFunc

	tagPattern         string
	tagPatternSet      bool
	fallbackVersion    string
	fallbackVersionSet bool
	rawOptions         Options
	rawOptionsSet      bool
}

// Option configures a VersionSource.
type Option func(*VersionSource)

// WithResolver replaces the git-backed resolver.
func WithResolver(r Resolver) Option {
	return func(s *VersionSource) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithLookupEnv replaces os.LookupEnv for override variables.
func WithLookupEnv(fn LookupEnvFunc) Option {
	return func(s *VersionSource) {
		if fn != nil {
			s.lookupEnv = fn
		}
	}
}

// New creates a VersionSource for the project at root. A relative root is
// made absolute against the working directory.
func New(root string, cfg Config, opts ...Option) *VersionSource {
	if cfg == nil {
		cfg = Config{}
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	s := &VersionSource{
		root:      root,
		config:    cfg,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = DefaultResolver(root)
	}
	return s
}

// Name returns PluginName.
func (s *VersionSource) Name() string { return PluginName }

// Root returns the project root the source was created with.
func (s *VersionSource) Root() string { return s.root }

// TagPattern returns the tag-pattern option, or "" when unset.
// The value is validated on first read and cached afterwards.
func (s *VersionSource) TagPattern() (string, error) {
	if !s.tagPatternSet {
		v, err := StringOption(s.config, KeyTagPattern, "")
		if err != nil {
			return "", err
		}
		s.tagPattern, s.tagPatternSet = v, true
	}
	return s.tagPattern, nil
}

// FallbackVersion returns the fallback-version option, or "" when unset.
func (s *VersionSource) FallbackVersion() (string, error) {
	if !s.fallbackVersionSet {
		v, err := StringOption(s.config, KeyFallbackVersion, "")
		if err != nil {
			return "", err
		}
		s.fallbackVersion, s.fallbackVersionSet = v, true
	}
	return s.fallbackVersion, nil
}

// RawOptions returns the raw-options table, or an empty table when unset.
// The returned map is the cached value; use BuildResolverOptions for a
// copy that is safe to modify.
func (s *VersionSource) RawOptions() (Options, error) {
	if !s.rawOptionsSet {
		v, err := TableOption(s.config, KeyRawOptions)
		if err != nil {
			return nil, err
		}
		s.rawOptions, s.rawOptionsSet = copyOptions(v), true
	}
	return s.rawOptions, nil
}

// BuildResolverOptions translates the configuration into resolver options.
func (s *VersionSource) BuildResolverOptions() (Options, error) {
	raw, err := s.RawOptions()
	if err != nil {
		return nil, err
	}
	tagPattern, err := s.TagPattern()
	if err != nil {
		return nil, err
	}
	fallback, err := s.FallbackVersion()
	if err != nil {
		return nil, err
	}

	opts := copyOptions(raw)
	if _, ok := opts[OptionRoot]; !ok {
		opts[OptionRoot] = s.root
	}
	if tagPattern != "" {
		opts[OptionTagRegex] = tagPattern
	}
	if fallback != "" {
		opts[OptionFallbackVersion] = fallback
	}

	// Version files are written by the build hook, never from here.
	delete(opts, OptionWriteTo)
	delete(opts, OptionWriteToTemplate)

	return opts, nil
}

// DistName returns the distribution name used to scope the per-distribution
// override: dist_name when configured, otherwise the last element of root.
func (s *VersionSource) DistName() (string, error) {
	if raw, ok := s.config[KeyDistName]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok {
			return "", &ConfigTypeError{Option: KeyDistName, Kind: KindString}
		}
		if name != "" {
			return name, nil
		}
	}

	return filepath.Base(s.root), nil
}

// Decide returns the version together with the signal that produced it.
// Resolver errors are returned as is.
func (s *VersionSource) Decide(ctx context.Context) (Decision, error) {
	distName, err := s.DistName()
	if err != nil {
		return Decision{}, err
	}

	if name, value, ok := LookupOverride(distName, s.lookupEnv); ok {
		return Decision{VersionData: VersionData{Version: value}, Source: name}, nil
	}

	opts, err := s.BuildResolverOptions()
	if err != nil {
		return Decision{}, err
	}

	version, err := s.resolver.GetVersion(ctx, opts)
	if err != nil {
		return Decision{}, err
	}
	return Decision{VersionData: VersionData{Version: version}, Source: SourceResolver}, nil
}

// GetVersionData resolves the version for the host build tool.
func (s *VersionSource) GetVersionData(ctx context.Context) (VersionData, error) {
	d, err := s.Decide(ctx)
	if err != nil {
		return VersionData{}, err
	}
	return d.VersionData, nil
}

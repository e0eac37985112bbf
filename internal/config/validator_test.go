package config

import (
	"context"
	"strings"
	"testing"
)

func findResult(results []ValidationResult, category, substr string) (ValidationResult, bool) {
	for _, r := range results {
		if r.Category == category && strings.Contains(r.Message, substr) {
			return r, true
		}
	}
	return ValidationResult{}, false
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name         string
		cfg          *Config
		wantErrors   int
		wantWarnings int
		category     string
		contains     string
	}{
		{
			name:     "empty configuration",
			cfg:      Default(),
			category: "Source",
			contains: "assumed",
		},
		{
			name:       "unknown source",
			cfg:        &Config{Version: map[string]any{"source": "regex"}},
			wantErrors: 1,
			category:   "Source",
			contains:   "unknown version source",
		},
		{
			name:         "unknown key",
			cfg:          &Config{Version: map[string]any{"source": "vcs", "tag_pattern": "x"}},
			wantWarnings: 1,
			category:     "Options",
			contains:     `"tag_pattern"`,
		},
		{
			name:       "tag pattern type error",
			cfg:        &Config{Version: map[string]any{"tag-pattern": 1}},
			wantErrors: 1,
			category:   "Tag Pattern",
			contains:   "option `tag-pattern` must be a string",
		},
		{
			name:       "tag pattern does not compile",
			cfg:        &Config{Version: map[string]any{"tag-pattern": "(?<=v)(.+)"}},
			wantErrors: 1,
			category:   "Tag Pattern",
			contains:   "invalid tag-pattern",
		},
		{
			name:         "tag pattern without group",
			cfg:          &Config{Version: map[string]any{"tag-pattern": `v\d+`}},
			wantWarnings: 1,
			category:     "Tag Pattern",
			contains:     "no capture group",
		},
		{
			name:       "fallback version type error",
			cfg:        &Config{Version: map[string]any{"fallback-version": []any{"1"}}},
			wantErrors: 1,
			category:   "Fallback Version",
			contains:   "must be a string",
		},
		{
			name:       "raw options type error",
			cfg:        &Config{Version: map[string]any{"raw-options": "root=."}},
			wantErrors: 1,
			category:   "Raw Options",
			contains:   "must be a table",
		},
		{
			name:         "write_to is ignored",
			cfg:          &Config{Version: map[string]any{"raw-options": map[string]any{"write_to": "v.py"}}},
			wantWarnings: 1,
			category:     "Raw Options",
			contains:     `"write_to"`,
		},
		{
			name:       "dist name type error",
			cfg:        &Config{Version: map[string]any{"dist_name": 3}},
			wantErrors: 1,
			category:   "Distribution",
			contains:   "must be a string",
		},
		{
			name:       "build hook without file",
			cfg:        &Config{Version: map[string]any{}, BuildHook: map[string]any{}},
			wantErrors: 1,
			category:   "Build Hook",
			contains:   "must be specified",
		},
		{
			name:     "build hook ok",
			cfg:      &Config{Version: map[string]any{}, BuildHook: map[string]any{"version-file": "VERSION"}},
			category: "Build Hook",
			contains: "VERSION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := NewValidator(tt.cfg, t.TempDir()).Validate(context.Background())
			checkError(t, err, false)

			if got := ErrorCount(results); got != tt.wantErrors {
				t.Errorf("ErrorCount() = %d, want %d (%+v)", got, tt.wantErrors, results)
			}
			if got := WarningCount(results); got != tt.wantWarnings {
				t.Errorf("WarningCount() = %d, want %d (%+v)", got, tt.wantWarnings, results)
			}
			if HasErrors(results) != (tt.wantErrors > 0) {
				t.Errorf("HasErrors() = %v", HasErrors(results))
			}
			if _, ok := findResult(results, tt.category, tt.contains); !ok {
				t.Errorf("no %q result containing %q in %+v", tt.category, tt.contains, results)
			}
		})
	}
}

func TestValidator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewValidator(Default(), t.TempDir()).Validate(ctx); err == nil {
		t.Error("expected error for a canceled context")
	}
}

func TestValidator_ResultsResetBetweenRuns(t *testing.T) {
	v := NewValidator(Default(), t.TempDir())
	first, _ := v.Validate(context.Background())
	second, _ := v.Validate(context.Background())
	if len(first) != len(second) {
		t.Errorf("results accumulated across runs: %d then %d", len(first), len(second))
	}
}

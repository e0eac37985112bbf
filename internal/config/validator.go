package config

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sort"

	"github.com/indaco/vcsver/internal/buildhook"
	"github.com/indaco/vcsver/internal/versionsource"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Source", "Build Hook").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// knownVersionKeys are the keys of the version-source table.
var knownVersionKeys = []string{
	"source",
	versionsource.KeyTagPattern,
	versionsource.KeyFallbackVersion,
	versionsource.KeyRawOptions,
	versionsource.KeyDistName,
}

// Validator validates a loaded configuration.
type Validator struct {
	cfg         *Config
	rootDir     string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator for the project at rootDir.
func NewValidator(cfg *Config, rootDir string) *Validator {
	return &Validator{
		cfg:         cfg,
		rootDir:     rootDir,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.validations = make([]ValidationResult, 0)

	v.validateSource()
	v.validateKeys()
	v.validateVersionOptions()
	v.validateBuildHook()

	return v.validations, nil
}

func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) validateSource() {
	raw, ok := v.cfg.Version["source"]
	if !ok {
		v.addValidation("Source", true, fmt.Sprintf("source not set, %q assumed", versionsource.PluginName), false)
		return
	}
	if s, _ := raw.(string); s != versionsource.PluginName {
		v.addValidation("Source", false, fmt.Sprintf("unknown version source %v, expected %q", raw, versionsource.PluginName), false)
		return
	}
	v.addValidation("Source", true, fmt.Sprintf("version source %q", versionsource.PluginName), false)
}

func (v *Validator) validateKeys() {
	var unknown []string
	for k := range v.cfg.Version {
		if !slices.Contains(knownVersionKeys, k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		v.addValidation("Options", false, fmt.Sprintf("unknown option %q is ignored", k), true)
	}
}

func (v *Validator) validateVersionOptions() {
	src := versionsource.New(v.rootDir, v.cfg.VersionSourceConfig())

	pattern, err := src.TagPattern()
	switch {
	case err != nil:
		v.addValidation("Tag Pattern", false, err.Error(), false)
	case pattern == "":
		v.addValidation("Tag Pattern", true, "default tag pattern", false)
	default:
		re, err := regexp.Compile(pattern)
		switch {
		case err != nil:
			v.addValidation("Tag Pattern", false, fmt.Sprintf("invalid tag-pattern: %v", err), false)
		case re.NumSubexp() == 0:
			v.addValidation("Tag Pattern", false, "tag-pattern has no capture group, the whole match is used", true)
		default:
			v.addValidation("Tag Pattern", true, fmt.Sprintf("tag-pattern %q", pattern), false)
		}
	}

	if _, err := src.FallbackVersion(); err != nil {
		v.addValidation("Fallback Version", false, err.Error(), false)
	} else {
		v.addValidation("Fallback Version", true, "fallback-version is valid", false)
	}

	raw, err := src.RawOptions()
	if err != nil {
		v.addValidation("Raw Options", false, err.Error(), false)
	} else {
		v.addValidation("Raw Options", true, fmt.Sprintf("%d raw option(s)", len(raw)), false)
		for _, key := range []string{versionsource.OptionWriteTo, versionsource.OptionWriteToTemplate} {
			if _, ok := raw[key]; ok {
				v.addValidation("Raw Options", false, fmt.Sprintf("raw option %q is ignored, configure the build hook instead", key), true)
			}
		}
	}

	if name, err := src.DistName(); err != nil {
		v.addValidation("Distribution", false, err.Error(), false)
	} else {
		v.addValidation("Distribution", true, fmt.Sprintf("distribution name %q", name), false)
	}
}

func (v *Validator) validateBuildHook() {
	if v.cfg.BuildHook == nil {
		return
	}
	target, err := buildhook.New(v.rootDir, v.cfg.BuildHook, nil).Target()
	if err != nil {
		v.addValidation("Build Hook", false, err.Error(), false)
		return
	}
	v.addValidation("Build Hook", true, fmt.Sprintf("writes %s (%s)", target.Path, target.Format), false)
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvp-joe/i18n-detect/internal/detect"
	"github.com/mvp-joe/i18n-detect/internal/discovery"
)

var (
	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrEmptyInclude indicates no include patterns are configured
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidPolicy indicates an unknown failure policy
	ErrInvalidPolicy = errors.New("invalid failure policy")

	// ErrInvalidConcurrency indicates a non-positive concurrency
	ErrInvalidConcurrency = errors.New("invalid concurrency")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidDebounce indicates a non-positive watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidCacheSize indicates a non-positive cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateDetect(&cfg.Detect); err != nil {
		errs = append(errs, err)
	}

	format := strings.ToLower(cfg.Output.Format)
	if format != "json" && format != "text" {
		errs = append(errs, fmt.Errorf("%w: must be 'json' or 'text', got '%s'", ErrInvalidFormat, cfg.Output.Format))
	}

	if cfg.Watch.DebounceMs <= 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms must be positive, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs))
	}

	if cfg.Cache.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_entries must be positive, got %d", ErrInvalidCacheSize, cfg.Cache.MaxEntries))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude))
	}

	if err := discovery.CompilePatterns(cfg.Include); err != nil {
		errs = append(errs, fmt.Errorf("%w: include: %v", ErrInvalidPattern, err))
	}

	if err := discovery.CompilePatterns(cfg.Ignore); err != nil {
		errs = append(errs, fmt.Errorf("%w: ignore: %v", ErrInvalidPattern, err))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateDetect(cfg *DetectConfig) error {
	var errs []error

	if _, err := detect.ParseFailurePolicy(cfg.FailurePolicy); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidPolicy, err))
	}

	if cfg.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConcurrency, cfg.Concurrency))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error that still matches
// each of them with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}

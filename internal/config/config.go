package config

import (
	"github.com/mvp-joe/i18n-detect/internal/discovery"
)

// Config represents the complete i18n-detect configuration.
// It can be loaded from .i18n-detect/config.yml with environment variable overrides.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Detect  DetectConfig  `yaml:"detect" mapstructure:"detect"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig defines which files are scanned when a directory is given.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// ExtractConfig configures the tree-sitter gateway.
type ExtractConfig struct {
	AllowSyntaxErrors bool `yaml:"allow_syntax_errors" mapstructure:"allow_syntax_errors"`
}

// DetectConfig configures the detection run.
type DetectConfig struct {
	FailurePolicy string `yaml:"failure_policy" mapstructure:"failure_policy"` // "abort" or "collect"
	Concurrency   int    `yaml:"concurrency" mapstructure:"concurrency"`       // files extracted at once
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json" or "text"
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// CacheConfig configures the extraction cache used by watch mode.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: append([]string(nil), discovery.DefaultInclude...),
			Ignore: append(append([]string(nil), discovery.DefaultIgnore...),
				"dist/**",
				"build/**",
				"coverage/**",
			),
		},
		Extract: ExtractConfig{
			AllowSyntaxErrors: false,
		},
		Detect: DetectConfig{
			FailurePolicy: "abort",
			Concurrency:   1,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Cache: CacheConfig{
			MaxEntries: 10000,
		},
	}
}

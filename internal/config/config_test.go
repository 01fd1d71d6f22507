package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .i18n-detect/config.yml when present
// - Load() loads from .i18n-detect/config.yaml when present
// - Load() merges a partial config file with defaults
// - Environment variables override config file values
// - .env in the root directory feeds environment overrides
// - Load() returns error for malformed YAML
// - Load() returns error for invalid configuration values
// - Validate() rejects each invalid field and reports all of them together

func writeConfig(t *testing.T, rootDir, name, content string) {
	t.Helper()
	dir := filepath.Join(rootDir, ".i18n-detect")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.mts", "**/*.cts", "**/*.mjs", "**/*.cjs"}, cfg.Paths.Include)
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
	assert.False(t, cfg.Extract.AllowSyntaxErrors)
	assert.Equal(t, "abort", cfg.Detect.FailurePolicy)
	assert.Equal(t, 1, cfg.Detect.Concurrency)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
	assert.Equal(t, 10000, cfg.Cache.MaxEntries)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_LoadsFromConfigYml(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfig(t, rootDir, "config.yml", `
paths:
  include:
    - "src/**/*.tsx"
  ignore:
    - "src/generated/**"

extract:
  allow_syntax_errors: true

detect:
  failure_policy: collect
  concurrency: 8

output:
  format: text

watch:
  debounce_ms: 250

cache:
  max_entries: 50
`)

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.tsx"}, cfg.Paths.Include)
	assert.Equal(t, []string{"src/generated/**"}, cfg.Paths.Ignore)
	assert.True(t, cfg.Extract.AllowSyntaxErrors)
	assert.Equal(t, "collect", cfg.Detect.FailurePolicy)
	assert.Equal(t, 8, cfg.Detect.Concurrency)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
	assert.Equal(t, 50, cfg.Cache.MaxEntries)
}

func TestLoad_LoadsFromConfigYamlAndMergesDefaults(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfig(t, rootDir, "config.yaml", `
detect:
  concurrency: 4
`)

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Detect.Concurrency)
	assert.Equal(t, "abort", cfg.Detect.FailurePolicy)
	assert.Equal(t, Default().Paths, cfg.Paths)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_EnvironmentOverridesConfigFile(t *testing.T) {
	rootDir := t.TempDir()
	writeConfig(t, rootDir, "config.yml", `
detect:
  failure_policy: abort
  concurrency: 2
`)
	t.Setenv("I18N_DETECT_DETECT_FAILURE_POLICY", "collect")
	t.Setenv("I18N_DETECT_OUTPUT_FORMAT", "text")

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "collect", cfg.Detect.FailurePolicy)
	assert.Equal(t, 2, cfg.Detect.Concurrency)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, ".env"), []byte("I18N_DETECT_CACHE_MAX_ENTRIES=42\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("I18N_DETECT_CACHE_MAX_ENTRIES") })

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Cache.MaxEntries)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfig(t, rootDir, "config.yml", "detect: [unclosed\n")

	_, err := NewLoader(rootDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfig(t, rootDir, "config.yml", `
detect:
  failure_policy: retry
`)

	_, err := NewLoader(rootDir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "empty include", mutate: func(c *Config) { c.Paths.Include = nil }, wantErr: ErrEmptyInclude},
		{name: "bad include glob", mutate: func(c *Config) { c.Paths.Include = []string{"[oops"} }, wantErr: ErrInvalidPattern},
		{name: "bad ignore glob", mutate: func(c *Config) { c.Paths.Ignore = []string{"{a,b"} }, wantErr: ErrInvalidPattern},
		{name: "unknown policy", mutate: func(c *Config) { c.Detect.FailurePolicy = "skip" }, wantErr: ErrInvalidPolicy},
		{name: "zero concurrency", mutate: func(c *Config) { c.Detect.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: ErrInvalidFormat},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.DebounceMs = -1 }, wantErr: ErrInvalidDebounce},
		{name: "zero cache", mutate: func(c *Config) { c.Cache.MaxEntries = 0 }, wantErr: ErrInvalidCacheSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Detect.Concurrency = -2
	cfg.Output.Format = "csv"
	cfg.Cache.MaxEntries = 0

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.ErrorIs(t, err, ErrInvalidCacheSize)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults, then config file, then environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (I18N_DETECT_*), including those from <root>/.env
// 2. Config file (.i18n-detect/config.yml or .i18n-detect/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Variables already set in the environment win over .env entries.
	envFile := filepath.Join(l.rootDir, ".env")
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	} else {
		log.Debug().Str("path", envFile).Msg("Loaded environment file")
	}

	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".i18n-detect")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("I18N_DETECT")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., I18N_DETECT_DETECT_CONCURRENCY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("extract.allow_syntax_errors")
	v.BindEnv("detect.failure_policy")
	v.BindEnv("detect.concurrency")
	v.BindEnv("output.format")
	v.BindEnv("watch.debounce_ms")
	v.BindEnv("cache.max_entries")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug().Str("path", v.ConfigFileUsed()).Msg("Using config file")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("extract.allow_syntax_errors", defaults.Extract.AllowSyntaxErrors)

	v.SetDefault("detect.failure_policy", defaults.Detect.FailurePolicy)
	v.SetDefault("detect.concurrency", defaults.Detect.Concurrency)

	v.SetDefault("output.format", defaults.Output.Format)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	v.SetDefault("cache.max_entries", defaults.Cache.MaxEntries)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

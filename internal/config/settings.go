package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/coveralls-ci/internal/env"
)

const (
	defaultEndpoint    = "https://coveralls.io"
	defaultTimeout     = 30 * time.Second
	defaultLogLevel    = "info"
	defaultLogEncoding = "json"
)

// Settings configures how a resolved job is uploaded.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Settings struct {
	Endpoint    string
	Timeout     time.Duration
	LogLevel    string
	LogEncoding string
}

// yamlSettings represents the YAML settings file structure.
type yamlSettings struct {
	Endpoint    string `yaml:"endpoint"`
	Timeout     string `yaml:"timeout"`
	LogLevel    string `yaml:"log_level"`
	LogEncoding string `yaml:"log_encoding"`
}

// SettingsOverrides holds command-line flag overrides.
type SettingsOverrides struct {
	ConfigFile string
	Endpoint   *string
	LogLevel   *string
}

// LoadSettings resolves Settings with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func LoadSettings(overrides *SettingsOverrides, e env.Getter) (Settings, error) {
	cfg := DefaultSettings()

	if err := applyEnvSettings(&cfg, e); err != nil {
		return Settings{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadSettingsFile(overrides.ConfigFile)
		if err != nil {
			return Settings{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLSettings(&cfg, yamlCfg)
	}

	if overrides != nil {
		applySettingsOverrides(&cfg, overrides)
	}

	if err := validateSettings(cfg); err != nil {
		return Settings{}, err
	}

	return cfg, nil
}

// DefaultSettings returns Settings with default values.
func DefaultSettings() Settings {
	return Settings{
		Endpoint:    defaultEndpoint,
		Timeout:     defaultTimeout,
		LogLevel:    defaultLogLevel,
		LogEncoding: defaultLogEncoding,
	}
}

func loadSettingsFile(path string) (*yamlSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlSettings
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

func applyYAMLSettings(cfg *Settings, yamlCfg *yamlSettings) {
	if yamlCfg.Endpoint != "" {
		cfg.Endpoint = yamlCfg.Endpoint
	}

	if yamlCfg.Timeout != "" {
		if d, err := time.ParseDuration(yamlCfg.Timeout); err == nil {
			cfg.Timeout = d
		}
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.LogEncoding != "" {
		cfg.LogEncoding = yamlCfg.LogEncoding
	}
}

func applyEnvSettings(cfg *Settings, e env.Getter) error {
	if e == nil {
		return nil
	}

	endpoint, ok, err := e.Get("COVERALLS_ENDPOINT")
	if err != nil {
		return err
	}
	if ok {
		cfg.Endpoint = strings.TrimSpace(endpoint)
	}

	level, ok, err := e.Get("COVERALLS_LOG_LEVEL")
	if err != nil {
		return err
	}
	if ok {
		cfg.LogLevel = strings.TrimSpace(level)
	}

	return nil
}

func applySettingsOverrides(cfg *Settings, overrides *SettingsOverrides) {
	if overrides.Endpoint != nil && *overrides.Endpoint != "" {
		cfg.Endpoint = *overrides.Endpoint
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

func validateSettings(cfg Settings) error {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: endpoint %q must be an absolute URL", ErrInvalidSettings, cfg.Endpoint)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be > 0", ErrInvalidSettings)
	}
	switch cfg.LogEncoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log_encoding must be json or console", ErrInvalidSettings)
	}
	return nil
}

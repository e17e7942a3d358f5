// Package config provides configuration management for sitetool with
// Viper integration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete configuration for sitetool.
type Config struct {
	// BaseURL overrides origin detection and the baked-in fallback
	// origin. Must be a bare origin (scheme + authority, no trailing
	// slash) when set.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url,omitempty"`
	// SiteDir is the root of the built site.
	SiteDir string        `mapstructure:"site_dir" yaml:"site_dir" json:"site_dir"`
	Audit   AuditConfig   `mapstructure:"audit" yaml:"audit" json:"audit"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search" json:"search"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// AuditConfig holds content-audit configuration.
type AuditConfig struct {
	DatabasePath string      `mapstructure:"database_path" yaml:"database_path" json:"database_path,omitempty"`
	Rules        []AuditRule `mapstructure:"rules" yaml:"rules" json:"rules,omitempty"`
}

// AuditRule is one content rule: a regular expression matched against
// page text, with the message reported when it hits.
type AuditRule struct {
	Name     string `mapstructure:"name" yaml:"name" json:"name"`
	Pattern  string `mapstructure:"pattern" yaml:"pattern" json:"pattern"`
	Message  string `mapstructure:"message" yaml:"message" json:"message"`
	Severity string `mapstructure:"severity" yaml:"severity" json:"severity"`
}

// SearchConfig holds the search smoke-test configuration.
type SearchConfig struct {
	// Endpoint defaults to <origin>/search when empty.
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint,omitempty"`
	Query    string        `mapstructure:"query" yaml:"query" json:"query"`
	Marker   string        `mapstructure:"marker" yaml:"marker" json:"marker"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Manager handles configuration loading.
type Manager struct {
	config *Config
	viper  *viper.Viper
	mu     sync.RWMutex
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Supports yaml, json, toml automatically.
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("SITETOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := []string{
		"base_url",
		"site_dir",
		"audit.database_path",
		"search.endpoint",
		"search.query",
		"search.marker",
		"search.timeout",
		"logging.level",
		"logging.format",
	}
	for _, key := range bindings {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	return &Manager{viper: v}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	setDefaults(m.viper)

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and env cover everything.
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Audit.DatabasePath == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Audit.DatabasePath = dbPath
	}

	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

// Config returns the loaded configuration.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// ConfigFileUsed returns the path of the config file viper loaded, if
// any.
func (m *Manager) ConfigFileUsed() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.ConfigFileUsed()
}

var (
	defaultManager *Manager
	initOnce       sync.Once
	initErr        error
)

// Init loads the global configuration once.
func Init() error {
	initOnce.Do(func() {
		var m *Manager
		m, initErr = NewManager()
		if initErr != nil {
			return
		}
		if initErr = m.Load(); initErr != nil {
			return
		}
		defaultManager = m
	})
	return initErr
}

// Get returns the globally loaded configuration, loading it on first
// use. A load failure falls back to defaults so callers always get a
// usable value.
func Get() *Config {
	if err := Init(); err != nil || defaultManager == nil {
		cfg := DefaultConfig()
		return &cfg
	}
	return defaultManager.Config()
}

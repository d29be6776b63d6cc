// Package config loads and validates cix configuration.
//
// Configuration is an immutable snapshot: components receive a *Config at
// construction and never re-read it mid-operation.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete cix configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RootPath string `json:"rootPath" mapstructure:"rootPath"`

	Index   IndexConfig   `json:"index" mapstructure:"index"`
	Watcher WatcherConfig `json:"watcher" mapstructure:"watcher"`
	Caches  CachesConfig  `json:"caches" mapstructure:"caches"`
	Git     GitConfig     `json:"git" mapstructure:"git"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// IndexConfig contains symbol index configuration
type IndexConfig struct {
	MaxFileSizeBytes int64    `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	ExcludePatterns  []string `json:"excludePatterns" mapstructure:"excludePatterns"`
	Extensions       []string `json:"extensions" mapstructure:"extensions"`
	Workers          int      `json:"workers" mapstructure:"workers"`
	ContextLines     int      `json:"contextLines" mapstructure:"contextLines"`
}

// WatcherConfig contains change tracker configuration
type WatcherConfig struct {
	Enabled     bool `json:"enabled" mapstructure:"enabled"`
	DebounceMs  int  `json:"debounceMs" mapstructure:"debounceMs"`
	HistorySize int  `json:"historySize" mapstructure:"historySize"`
	MaxWorkers  int  `json:"maxWorkers" mapstructure:"maxWorkers"`
}

// CacheConfig configures a single named cache
type CacheConfig struct {
	TTLSeconds int `json:"ttlSeconds" mapstructure:"ttlSeconds"`
	MaxEntries int `json:"maxEntries" mapstructure:"maxEntries"`
}

// CachesConfig configures the named cache instances
type CachesConfig struct {
	Files   CacheConfig `json:"files" mapstructure:"files"`
	Symbols CacheConfig `json:"symbols" mapstructure:"symbols"`
	Git     CacheConfig `json:"git" mapstructure:"git"`
}

// GitConfig contains git adapter configuration
type GitConfig struct {
	TimeoutMs int `json:"timeoutMs" mapstructure:"timeoutMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DebounceWindow returns the watcher debounce window as a duration
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Watcher.DebounceMs) * time.Millisecond
}

// GitTimeout returns the git command timeout as a duration
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.Git.TimeoutMs) * time.Millisecond
}

// TTL returns the configured TTL of a cache as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RootPath: ".",
		Index: IndexConfig{
			MaxFileSizeBytes: 1_000_000,
			ExcludePatterns: []string{
				"node_modules/**",
				"vendor/**",
				"__pycache__/**",
				".git/**",
				".cix/**",
				"*.min.js",
				"dist/**",
				"build/**",
			},
			Extensions: []string{
				".go", ".py", ".js", ".jsx", ".ts", ".tsx",
				".rs", ".java", ".c", ".h", ".cpp", ".hpp", ".cc",
				".rb", ".php",
			},
			Workers:      4,
			ContextLines: 2,
		},
		Watcher: WatcherConfig{
			Enabled:     true,
			DebounceMs:  500,
			HistorySize: 1000,
			MaxWorkers:  4,
		},
		Caches: CachesConfig{
			// File-content cache turns over quickly with edits
			Files: CacheConfig{TTLSeconds: 300, MaxEntries: 2000},
			// Extraction results keyed by content hash stay valid longer
			Symbols: CacheConfig{TTLSeconds: 3600, MaxEntries: 5000},
			// Git history changes rarely relative to code edits
			Git: CacheConfig{TTLSeconds: 1800, MaxEntries: 500},
		},
		Git: GitConfig{
			TimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .cix/config.json under rootPath,
// falling back to defaults when no config file exists.
func LoadConfig(rootPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("rootPath", rootPath)
	v.SetDefault("index", defaults.Index)
	v.SetDefault("watcher", defaults.Watcher)
	v.SetDefault("caches", defaults.Caches)
	v.SetDefault("git", defaults.Git)
	v.SetDefault("logging", defaults.Logging)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(rootPath, ".cix"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			cfg.RootPath = rootPath
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.RootPath == "" {
		cfg.RootPath = rootPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .cix/config.json
func (c *Config) Save(rootPath string) error {
	dir := filepath.Join(rootPath, ".cix")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Index.MaxFileSizeBytes <= 0 {
		return &ConfigError{Field: "index.maxFileSizeBytes", Message: "must be positive"}
	}
	if c.Watcher.DebounceMs < 0 {
		return &ConfigError{Field: "watcher.debounceMs", Message: "must not be negative"}
	}
	if c.Watcher.HistorySize <= 0 {
		return &ConfigError{Field: "watcher.historySize", Message: "must be positive"}
	}
	if c.Index.Workers <= 0 {
		return &ConfigError{Field: "index.workers", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// Package config loads CLI settings from an optional YAML file and
// USERCONF_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/userconf"
)

// Config holds the CLI settings. Environment variables override the file.
type Config struct {
	Driver     string `yaml:"driver"`      // USERCONF_DRIVER, default "encoding/json"
	MaxDepth   int    `yaml:"max_depth"`   // USERCONF_MAX_DEPTH, default DefaultMaxDepth, 0 = off
	MaxBytes   int64  `yaml:"max_bytes"`   // USERCONF_MAX_BYTES, default 0 (off)
	StrictKeys bool   `yaml:"strict_keys"` // USERCONF_STRICT_KEYS, default false

	Log LogConfig `yaml:"log"`
}

// LogConfig mirrors logging.Config in file form.
type LogConfig struct {
	Level      string `yaml:"level"`        // USERCONF_LOG_LEVEL, default "warn"
	File       string `yaml:"file"`         // USERCONF_LOG_FILE, default "" (stderr)
	MaxSizeMB  int    `yaml:"max_size_mb"`  // USERCONF_LOG_MAX_SIZE_MB, default 10
	MaxBackups int    `yaml:"max_backups"`  // USERCONF_LOG_MAX_BACKUPS, default 3
	MaxAgeDays int    `yaml:"max_age_days"` // USERCONF_LOG_MAX_AGE_DAYS, default 28
	Compress   bool   `yaml:"compress"`     // USERCONF_LOG_COMPRESS, default true
}

// DefaultMaxDepth bounds nesting for CLI input. User documents need 2.
const DefaultMaxDepth = 64

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Driver:   userconf.DriverEncodingJSON,
		MaxDepth: DefaultMaxDepth,
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load reads path (skipped when empty) on top of Default, then applies the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers and negative limits.
func (c Config) Validate() error {
	if _, err := userconf.DriverByName(c.Driver); err != nil {
		return fmt.Errorf("driver %q: %w (have %v)", c.Driver, err, userconf.DriverNames())
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must be >= 0, got %d", c.MaxBytes)
	}
	return nil
}

// ParseOpt converts the settings into syntax stage options.
func (c Config) ParseOpt() (userconf.ParseOpt, error) {
	drv, err := userconf.DriverByName(c.Driver)
	if err != nil {
		return userconf.ParseOpt{}, err
	}
	opt := userconf.ParseOpt{Driver: drv, MaxDepth: c.MaxDepth, MaxBytes: c.MaxBytes}
	if c.StrictKeys {
		opt.OnDuplicateKey = userconf.DuplicateError
	}
	return opt, nil
}

func (c *Config) applyEnv() {
	c.Driver = getEnvString("USERCONF_DRIVER", c.Driver)
	c.MaxDepth = getEnvInt("USERCONF_MAX_DEPTH", c.MaxDepth)
	c.MaxBytes = int64(getEnvInt("USERCONF_MAX_BYTES", int(c.MaxBytes)))
	c.StrictKeys = getEnvBool("USERCONF_STRICT_KEYS", c.StrictKeys)

	c.Log.Level = getEnvString("USERCONF_LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnvString("USERCONF_LOG_FILE", c.Log.File)
	c.Log.MaxSizeMB = getEnvInt("USERCONF_LOG_MAX_SIZE_MB", c.Log.MaxSizeMB)
	c.Log.MaxBackups = getEnvInt("USERCONF_LOG_MAX_BACKUPS", c.Log.MaxBackups)
	c.Log.MaxAgeDays = getEnvInt("USERCONF_LOG_MAX_AGE_DAYS", c.Log.MaxAgeDays)
	c.Log.Compress = getEnvBool("USERCONF_LOG_COMPRESS", c.Log.Compress)
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

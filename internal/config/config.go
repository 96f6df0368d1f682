package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/uniinit-labs/uniinit/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTemplatesDir       = "templates_dir"
	KeyPostProcessTimeout = "post_process_timeout"
	KeyLogLevel           = "log_level"
)

// DefaultPostProcessTimeout bounds how long the CLI waits for a template's
// post-processing script before reporting it as still running.
const DefaultPostProcessTimeout = 10 * time.Minute

// Dir returns the path to the config directory (~/.uniinit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.uniinit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyPostProcessTimeout, DefaultPostProcessTimeout.String())
	viper.SetDefault(KeyLogLevel, "info")

	// A missing file is the normal first-run state.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// TemplatesDir returns the configured catalog root, or "" when unset.
func TemplatesDir() string {
	return viper.GetString(KeyTemplatesDir)
}

// PostProcessTimeout returns the configured wait bound for post-processing.
// Unparseable or non-positive values fall back to DefaultPostProcessTimeout.
func PostProcessTimeout() time.Duration {
	d := viper.GetDuration(KeyPostProcessTimeout)
	if d <= 0 {
		return DefaultPostProcessTimeout
	}
	return d
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// ErrUnknownKey is returned by Set for keys the CLI does not read.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the settings accepted by Set.
func Keys() []string {
	return []string{KeyTemplatesDir, KeyPostProcessTimeout, KeyLogLevel}
}

func checkValue(key, value string) error {
	switch key {
	case KeyTemplatesDir:
		return nil
	case KeyPostProcessTimeout:
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration such as 5m, got %q", key, value)
		}
		return nil
	case KeyLogLevel:
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
			return nil
		}
		return fmt.Errorf("%s must be debug, info, warn or error, got %q", key, value)
	}
	return fmt.Errorf("%w %q (known: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
}

// Set validates value for key and saves it to the config file.
func Set(key, value string) error {
	if err := checkValue(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}
	viper.Set(key, value)
	if err := viper.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

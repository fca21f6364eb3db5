package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/packagesmith/packagesmith/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyColor          = "color"
	KeyLogLevel       = "log_level"
	KeyAssumeYes      = "assume_yes"
	KeyShell          = "shell"
	KeyCommandWorkDir = "command_workdir"
)

var defaults = map[string]any{
	KeyColor:          "auto",
	KeyLogLevel:       "warn",
	KeyAssumeYes:      false,
	KeyShell:          "",
	KeyCommandWorkDir: "parent",
}

// allowed lists the accepted values of enumerated keys.
var allowed = map[string][]string{
	KeyColor:          {"auto", "always", "never"},
	KeyLogLevel:       {"debug", "info", "warn", "error"},
	KeyAssumeYes:      {"true", "false"},
	KeyCommandWorkDir: {"parent", "resolved"},
}

// Settings is the resolved configuration for a run.
type Settings struct {
	Color          string
	LogLevel       string
	AssumeYes      bool
	Shell          string
	CommandWorkDir string
}

// Dir returns the config directory: $PACKAGESMITH_HOME, or ~/.packagesmith.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
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
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the settings resolved from defaults, file and environment.
func Current() Settings {
	return Settings{
		Color:          viper.GetString(KeyColor),
		LogLevel:       viper.GetString(KeyLogLevel),
		AssumeYes:      viper.GetBool(KeyAssumeYes),
		Shell:          viper.GetString(KeyShell),
		CommandWorkDir: viper.GetString(KeyCommandWorkDir),
	}
}

// Keys returns the known configuration keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Check reports whether value is acceptable for key.
func Check(key, value string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	opts, ok := allowed[key]
	if !ok {
		return nil
	}
	for _, o := range opts {
		if o == value {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q for %s (want one of %s)", value, key, strings.Join(opts, ", "))
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := Check(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix is prepended to every environment override, e.g. CURLFMT_SHELL
	EnvPrefix = "CURLFMT"
)

var (
	// ConfigDir is the global configuration directory (~/.curlfmt)
	ConfigDir string

	// ConfigFile is the YAML settings file
	ConfigFile string

	// DatabasePath is the SQLite database file for report history
	DatabasePath string
)

// Settings holds everything the CLI reads from the config file and environment
type Settings struct {
	Shell   string          `mapstructure:"shell" yaml:"shell"`
	Output  string          `mapstructure:"output" yaml:"output"` // text, json, yaml, body
	Color   bool            `mapstructure:"color" yaml:"color"`
	Style   string          `mapstructure:"style" yaml:"style"` // chroma style for JSON highlighting
	History HistorySettings `mapstructure:"history" yaml:"history"`
	Log     LogSettings     `mapstructure:"log" yaml:"log"`
}

// HistorySettings controls the report history database
type HistorySettings struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Limit   int  `mapstructure:"limit" yaml:"limit"`
}

// LogSettings controls diagnostic logging on stderr
type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// Defaults returns the settings used when neither file nor environment say otherwise
func Defaults() Settings {
	return Settings{
		Shell:  "sh",
		Output: "text",
		Color:  true,
		Style:  "monokai",
		History: HistorySettings{
			Enabled: true,
			Limit:   50,
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Initialize sets up the configuration directory and writes a default
// config file if none exists. It creates ~/.curlfmt/ when missing.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".curlfmt"))
}

// InitializeAt is Initialize rooted at dir instead of the home directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "curlfmt.db")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	if _, err := os.Stat(ConfigFile); os.IsNotExist(err) {
		data, err := yaml.Marshal(Defaults())
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(ConfigFile, data, FilePermissions); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	return nil
}

// Load reads settings from path (ConfigFile when empty) with CURLFMT_* env overrides.
// A missing file is not an error, defaults apply.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = ConfigFile
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return s, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("shell", d.Shell)
	v.SetDefault("output", d.Output)
	v.SetDefault("color", d.Color)
	v.SetDefault("style", d.Style)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.limit", d.History.Limit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

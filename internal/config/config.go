// Package config loads blockkit CLI settings with Viper.
//
// Values are resolved in this order, later sources winning: built-in
// defaults, the .blockkit.yaml config file, BLOCKKIT_* environment variables
// and finally command-line flags bound through LoadOptions.Flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/reoring/blockkit/i18n"
)

const (
	// AppName is the application name.
	AppName = "blockkit"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = ".blockkit"
	// EnvPrefix prefixes every environment variable the CLI reads.
	EnvPrefix = "BLOCKKIT"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the resolved CLI settings.
type Config struct {
	Lang     string `mapstructure:"lang"`
	Format   string `mapstructure:"format"`
	Color    string `mapstructure:"color"`
	LogLevel string `mapstructure:"log_level"`
	// Strict reports duplicate object keys as violations instead of warnings.
	Strict bool `mapstructure:"strict"`
	// MaxBytes caps the size of one input document; 0 disables the cap.
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Lang:     "en",
		Format:   FormatText,
		Color:    ColorAuto,
		LogLevel: "info",
		MaxBytes: 1 << 20,
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFilePath selects a config file explicitly. It must exist.
	ConfigFilePath string
	// SearchDirs are searched in order for .blockkit.yaml when no explicit
	// path is given. Defaults to the working directory and the home directory.
	SearchDirs []string
	// Flags, when set, overrides keys whose flag (key with '_' spelled '-')
	// was changed on the command line.
	Flags *pflag.FlagSet
}

var keys = []string{"lang", "format", "color", "log_level", "strict", "max_bytes"}

// Load resolves the configuration and returns it with the path of the config
// file that was read, or "" when none was found.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("lang", defaults.Lang)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("max_bytes", defaults.MaxBytes)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for _, k := range keys {
			if f := opts.Flags.Lookup(strings.ReplaceAll(k, "_", "-")); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, "", fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	resolved, err := readConfigFile(v, opts)
	if err != nil {
		return nil, "", err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		if resolved != "" {
			return nil, "", fmt.Errorf("%s: %w", resolved, err)
		}
		return nil, "", err
	}
	return &cfg, resolved, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config %s: %w", opts.ConfigFilePath, err)
		}
		return opts.ConfigFilePath, nil
	}

	dirs := opts.SearchDirs
	if len(dirs) == 0 {
		dirs = []string{"."}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home)
		}
	}
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Validate reports the first setting that holds an unsupported value.
func (c *Config) Validate() error {
	if !slices.Contains(i18n.Languages(), c.Lang) {
		return fmt.Errorf("lang: unsupported language %q (want one of %s)", c.Lang, strings.Join(i18n.Languages(), ", "))
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("format: unsupported output format %q (want text or json)", c.Format)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color: unsupported mode %q (want auto, always or never)", c.Color)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("max_bytes: must not be negative (got %d)", c.MaxBytes)
	}
	return nil
}

// Level returns the parsed log level. It assumes c has been validated.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

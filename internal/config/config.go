package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Legacy LegacyConfig `mapstructure:"legacy"`
	Render RenderConfig `mapstructure:"render"`
	Hwdef  HwdefConfig  `mapstructure:"hwdef"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type LegacyConfig struct {
	// DataFile replaces the built-in legacy name table when set.
	DataFile  string `mapstructure:"data_file"`
	CacheSize int    `mapstructure:"cache_size"`
}

type RenderConfig struct {
	TrimBlocks   bool   `mapstructure:"trim_blocks"`
	LStripBlocks bool   `mapstructure:"lstrip_blocks"`
	MissingKey   string `mapstructure:"missing_key"`
}

type HwdefConfig struct {
	ValidateSchema bool `mapstructure:"validate_schema"`
}

const (
	EnvPrefix         = "HWDEFS"
	DefaultConfigName = "hwdefs"
)

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	// Defaults setzen
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("legacy.data_file", "")
	v.SetDefault("legacy.cache_size", 32)
	v.SetDefault("render.trim_blocks", true)
	v.SetDefault("render.lstrip_blocks", true)
	v.SetDefault("render.missing_key", "error")
	v.SetDefault("hwdef.validate_schema", true)

	// HWDEFS_LOG_LEVEL -> log.level
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file at path into v and unmarshals the result.
// Without a path, hwdefs.yaml is looked up in the working directory and
// may be absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

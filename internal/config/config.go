// Package config loads tool configuration from an optional YAML file and
// CABPLAN_ environment variables, with a .env file picked up when present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/piwi3910/cabplan/internal/costing"
)

// Config holds all configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Build   BuildConfig   `mapstructure:"build"`
	Costing CostingConfig `mapstructure:"costing"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// BuildConfig holds the default build options applied when flags are absent.
type BuildConfig struct {
	Style    string `mapstructure:"style"`     // named construction style
	BackMode string `mapstructure:"back_mode"` // overlay or inset; empty keeps the style's own mode
	Fronts   bool   `mapstructure:"fronts"`    // include doors and drawer fronts
}

// CostingConfig holds the purchase-estimate parameters.
type CostingConfig struct {
	KerfWidth    float64 `mapstructure:"kerf_width"`    // mm
	WastePercent float64 `mapstructure:"waste_percent"` // e.g. 15 for 15%
}

// Load reads configuration from cabplan.yaml (working directory or the user
// config directory) and the environment. A missing config file is not an
// error; defaults and environment variables apply.
func Load() (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("cabplan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "cabplan"))
	}

	v.SetEnvPrefix("CABPLAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("build.style", "Standard Overlay")
	v.SetDefault("build.back_mode", "")
	v.SetDefault("build.fronts", false)
	v.SetDefault("costing.kerf_width", costing.DefaultKerfWidth)
	v.SetDefault("costing.waste_percent", costing.DefaultWastePercent)
}

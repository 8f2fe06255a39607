// Package config loads fancyfolders settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"fancyfolders/internal/generator"
)

const (
	// EnvPrefix is prepended to every environment override, e.g.
	// FANCYFOLDERS_ASSETS_DIR or FANCYFOLDERS_TUNING_LUT_SIZE.
	EnvPrefix = "FANCYFOLDERS"

	defaultName = ".fancyfolders"
)

type Config struct {
	AssetsDir string           `mapstructure:"assets_dir"`
	FontDirs  []string         `mapstructure:"font_dirs"`
	Workers   int              `mapstructure:"workers"`
	LogLevel  string           `mapstructure:"log_level"`
	Tuning    generator.Tuning `mapstructure:"tuning"`
}

// Load reads path, or $HOME/.fancyfolders.yaml when path is empty. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return Config{}, err
		}
		v.AddConfigPath(home)
		v.SetConfigName(defaultName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if expanded, err := homedir.Expand(cfg.AssetsDir); err == nil {
		cfg.AssetsDir = expanded
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	t := generator.DefaultTuning()

	v.SetDefault("assets_dir", "assets")
	v.SetDefault("font_dirs", []string{})
	v.SetDefault("workers", 0)
	v.SetDefault("log_level", "info")

	v.SetDefault("tuning.shadow_increase", t.ShadowIncrease)
	v.SetDefault("tuning.inner_shadow_value_factor", t.InnerShadowValueFactor)
	v.SetDefault("tuning.inner_shadow_blur", t.InnerShadowBlur)
	v.SetDefault("tuning.inner_shadow_y_offset", t.InnerShadowYOffset)
	v.SetDefault("tuning.outer_highlight_blur", t.OuterHighlightBlur)
	v.SetDefault("tuning.outer_highlight_y_offset", t.OuterHighlightYOffset)
	v.SetDefault("tuning.badge_box_shrink", t.BadgeBoxShrink)
	v.SetDefault("tuning.sigmoid_steepness", t.SigmoidSteepness)
	v.SetDefault("tuning.lut_size", t.LUTSize)
}

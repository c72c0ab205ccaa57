// Package config loads batch-runner settings from an optional YAML file
// via spf13/viper, layered under CLI flags (SPEC_FULL.md §4.12): flags
// override config-file values, which override built-in defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the settings a deployment may override without
// recompiling: which trait parsers are enabled, worker count, and catalog
// DSL file paths. UnitOverrides is read from the file as well, but no code
// path applies it to the unit tables or the scanner's unit spellings.
type Config struct {
	Parsers       []string          `mapstructure:"parsers"`
	UnitOverrides map[string]string `mapstructure:"unit_overrides"`
	Workers       int               `mapstructure:"workers"`
	CatalogFiles  []string          `mapstructure:"catalog_files"`
}

// Default returns the built-in configuration: every trait family enabled,
// no unit overrides, one worker per CPU (resolved by the caller, since
// runtime.NumCPU() belongs in cmd/, not this package), no extra catalog
// files.
func Default() Config {
	return Config{
		Parsers: []string{
			"sex", "life_stage", "total_length", "tail_length", "hind_foot_length",
			"ear_length", "body_mass", "testes_state", "testes_size", "ovaries_state",
			"ovaries_size", "gonads_state", "placental_scar_count", "embryo_count",
			"lactation_state", "nipple_state", "pregnancy_state",
		},
		Workers: 0, // 0 means "caller picks runtime.NumCPU()"
	}
}

// Load reads an optional YAML config file at path, merging it over the
// built-in defaults. An empty path is not an error: Default() alone is
// returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("parsers", cfg.Parsers)
	v.SetDefault("workers", cfg.Workers)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SEDTOOL_ENERGY_EMIN.
const EnvPrefix = "SEDTOOL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("out", ".")
	v.SetDefault("target.spectrum", "PowerLaw")
	v.SetDefault("energy.emin", 100.0)
	v.SetDefault("energy.emax", 3e5)
	v.SetDefault("sed.points", 2000)
	v.SetDefault("sed.plotname", "")
	v.SetDefault("sed.fitfile", "")
	v.SetDefault("ebin.numenergybins", 0)
	v.SetDefault("ebin.format", "yaml")
	v.SetDefault("ebin.concurrency", 1)
	v.SetDefault("blocks.enabled", false)
	v.SetDefault("blocks.p0", 0.5)
	v.SetDefault("archive.path", "")
}

// Load reads the configuration file at path (YAML or TOML, by extension),
// applies environment overrides and defaults, and validates the result. An
// empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config

	cfg.Target.Name = v.GetString("target.name")
	cfg.Target.Spectrum = v.GetString("target.spectrum")
	cfg.Out = v.GetString("out")

	cfg.Energy.Emin = v.GetFloat64("energy.emin")
	cfg.Energy.Emax = v.GetFloat64("energy.emax")

	cfg.SED.Points = v.GetInt("sed.points")
	cfg.SED.PlotName = v.GetString("sed.plotname")
	cfg.SED.FitFile = v.GetString("sed.fitfile")

	cfg.Ebin.NumEnergyBins = v.GetInt("ebin.numenergybins")
	cfg.Ebin.Format = strings.ToLower(v.GetString("ebin.format"))
	cfg.Ebin.Concurrency = v.GetInt("ebin.concurrency")

	cfg.Blocks.Enabled = v.GetBool("blocks.enabled")
	cfg.Blocks.P0 = v.GetFloat64("blocks.p0")

	cfg.Archive.Path = v.GetString("archive.path")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

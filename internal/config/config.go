// Package config loads the run configuration and fit result files used by
// the sedtool command.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cwbudde/algo-sed/sed"
	"github.com/cwbudde/algo-sed/sed/bins"
)

// Configuration errors.
var (
	ErrMissingTarget  = errors.New("config: target.name is required")
	ErrInvalidBins    = errors.New("config: Ebin.NumEnergyBins must be >= 0")
	ErrInvalidFormat  = errors.New("config: Ebin.format must be yaml, yml or toml")
	ErrInvalidP0      = errors.New("config: blocks.p0 must be in (0, 1]")
	ErrConfigNotFound = errors.New("config: configuration file not found")
)

// Config is the run configuration of one source analysis.
type Config struct {
	Target  TargetConfig
	Out     string
	Energy  EnergyConfig
	SED     SEDConfig
	Ebin    EbinConfig
	Blocks  BlocksConfig
	Archive ArchiveConfig
}

// TargetConfig names the analysed source.
type TargetConfig struct {
	Name     string
	Spectrum string
}

// EnergyConfig bounds the analysis energy range in MeV.
type EnergyConfig struct {
	Emin float64
	Emax float64
}

// SEDConfig controls SED sampling and output naming.
type SEDConfig struct {
	Points   int
	PlotName string
	FitFile  string
}

// EbinConfig describes the per-bin analysis.
type EbinConfig struct {
	NumEnergyBins int
	Format        string
	Concurrency   int
}

// BlocksConfig configures the Bayesian-blocks segmentation.
type BlocksConfig struct {
	Enabled bool
	P0      float64
}

// ArchiveConfig enables the sqlite run archive when Path is set.
type ArchiveConfig struct {
	Path string
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Target.Name == "" {
		return ErrMissingTarget
	}
	if err := c.SEDParams().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Ebin.NumEnergyBins < 0 {
		return ErrInvalidBins
	}
	switch c.Ebin.Format {
	case "yaml", "yml", "toml":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Ebin.Format)
	}
	if !(c.Blocks.P0 > 0 && c.Blocks.P0 <= 1) {
		return ErrInvalidP0
	}
	return nil
}

// SEDParams returns the SED sampling parameters.
func (c *Config) SEDParams() sed.Params {
	return sed.Params{Emin: c.Energy.Emin, Emax: c.Energy.Emax, N: c.SED.Points}
}

// PlotBase returns the path prefix of SED outputs.
func (c *Config) PlotBase() string {
	name := c.SED.PlotName
	if name == "" {
		name = c.Target.Name + "_" + c.Target.Spectrum
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Out, name)
}

// BinPaths returns the per-bin result file paths.
func (c *Config) BinPaths() []string {
	return bins.Paths(c.Out, c.Target.Name, c.Ebin.NumEnergyBins, c.Ebin.Format)
}

// FitPath returns the fit result file path.
func (c *Config) FitPath() string {
	if c.SED.FitFile == "" {
		return filepath.Join(c.Out, c.Target.Name+"_fit.yaml")
	}
	if filepath.IsAbs(c.SED.FitFile) {
		return c.SED.FitFile
	}
	return filepath.Join(c.Out, c.SED.FitFile)
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-sed/sed"
	"github.com/cwbudde/algo-sed/sed/model"
)

// ErrInvalidFit is returned for fit files that cannot describe a model.
var ErrInvalidFit = errors.New("config: invalid fit file")

// FitFile is the on-disk form of a likelihood fit result for one source.
// Covariance rows and columns follow the order of Free.
type FitFile struct {
	Source     string             `yaml:"source"`
	Model      string             `yaml:"model"`
	Parameters map[string]float64 `yaml:"parameters"`
	Free       []string           `yaml:"free"`
	Covariance [][]float64        `yaml:"covariance"`
}

// Fit is a decoded fit result.
type Fit struct {
	Source     string
	Model      string
	Oracle     model.Oracle
	Covariance *sed.Covariance
}

// LoadFit reads and decodes a YAML fit file.
func LoadFit(path string) (*Fit, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fit path comes from the run configuration
	if err != nil {
		return nil, err
	}

	var ff FitFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFit, path, err)
	}
	return ff.Build()
}

// Build turns the file contents into an oracle and covariance matrix.
func (ff *FitFile) Build() (*Fit, error) {
	if ff.Model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrInvalidFit)
	}
	oracle, err := model.New(ff.Model, ff.Parameters, ff.Free)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFit, err)
	}
	cov, err := sed.NewCovariance(ff.Covariance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFit, err)
	}
	if n := len(oracle.FreeParams()); n != cov.Dim() {
		return nil, fmt.Errorf("%w: %w: %d free parameters, %dx%d covariance",
			ErrInvalidFit, sed.ErrDimensionMismatch, n, cov.Dim(), cov.Dim())
	}
	return &Fit{Source: ff.Source, Model: ff.Model, Oracle: oracle, Covariance: cov}, nil
}

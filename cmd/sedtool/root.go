package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-sed/internal/config"
	"github.com/cwbudde/algo-sed/internal/logging"
	"github.com/cwbudde/algo-sed/internal/store"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sedtool",
		Short: "Spectral energy distributions from likelihood fits",
		Long: `sedtool turns the result of a gamma-ray likelihood fit into a spectral
energy distribution with its 1-sigma error band, collects per-energy-bin
fit results into SED points, and segments those points into Bayesian blocks.

Settings come from a YAML or TOML run configuration (--config). Every key can
be overridden with an environment variable, e.g. SEDTOOL_ENERGY_EMIN=200.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Run configuration file (YAML or TOML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewSEDCmd())
	cmd.AddCommand(NewBinsCmd())
	cmd.AddCommand(NewBlocksCmd())
	cmd.AddCommand(NewCountsCmd())
	cmd.AddCommand(NewHistoryCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is the state shared by all subcommands.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func setup(cmd *cobra.Command) (*env, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		zap.String("config", path),
		zap.String("target", cfg.Target.Name),
		zap.Float64("emin", cfg.Energy.Emin),
		zap.Float64("emax", cfg.Energy.Emax))
	return &env{cfg: cfg, logger: logger}, nil
}

// archive stores a run when an archive path is configured.
func (e *env) archive(ctx context.Context, run store.Run, bins []store.Bin) error {
	if e.cfg.Archive.Path == "" {
		return nil
	}
	s, err := store.Open(e.cfg.Archive.Path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = s.Close() }()

	id, err := s.InsertRun(ctx, run, bins)
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	e.logger.Info("run archived", zap.Int64("run_id", id), zap.String("archive", e.cfg.Archive.Path))
	return nil
}

func (e *env) sync() {
	_ = e.logger.Sync()
}

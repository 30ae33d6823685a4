package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-sed/sed/bins"
	"github.com/cwbudde/algo-sed/sed/blocks"
)

// NewBlocksCmd creates the blocks command.
func NewBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Segment the energy-bin SED points into Bayesian blocks",
		Long: `Collect the energy-bin SED points like the bins command and partition them
into contiguous energy ranges of constant SED level using the Bayesian blocks
algorithm for point measurements. Upper limits enter as zero-valued points
with the limit as uncertainty.

The false-positive rate p0 defaults to blocks.p0 from the configuration.`,
		Args: cobra.NoArgs,
		RunE: runBlocksCmd,
	}

	cmd.Flags().Float64("p0", blocks.DefaultP0, "False-positive rate for the change-point prior")

	return cmd
}

func runBlocksCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.sync()

	p0 := e.cfg.Blocks.P0
	if cmd.Flags().Changed("p0") {
		if p0, err = cmd.Flags().GetFloat64("p0"); err != nil {
			return err
		}
	}

	pts, err := aggregate(cmd, e)
	if err != nil {
		return err
	}
	return segment(cmd, e, pts, p0)
}

func segment(cmd *cobra.Command, e *env, pts *bins.Points, p0 float64) error {
	segs, err := blocks.SegmentPoints(pts, p0)
	if err != nil {
		return err
	}
	e.logger.Info("bayesian blocks",
		zap.String("source", e.cfg.Target.Name),
		zap.Float64("p0", p0),
		zap.Int("blocks", len(segs)))

	return printSegments(cmd.OutOrStdout(), segs)
}

func printSegments(w io.Writer, segs []blocks.Block) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Block\tE low [MeV]\tE high [MeV]\tPoints\tMean [erg/cm2/s]\tError\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t-----------\t------------\t------\t----------------\t-----\n"); err != nil {
		return err
	}
	for i, s := range segs {
		if _, err := fmt.Fprintf(tw, "%d\t%.4g\t%.4g\t%d\t%.4e\t%.4e\n",
			i, s.XLow, s.XHigh, s.Count, s.Mean, s.Error); err != nil {
			return err
		}
	}
	return tw.Flush()
}

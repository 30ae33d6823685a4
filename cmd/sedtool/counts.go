package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sed/sed/counts"
)

// NewCountsCmd creates the counts command.
func NewCountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counts <counts-file>",
		Short: "Merge counts spectra and print model residuals",
		Long: `Read a YAML list of counts spectra, one per likelihood component, merge
channels with identical energy bounds and print observed counts, the counts
of the target source, of all other sources, and the fractional residual
(observed - model) / model.`,
		Args: cobra.ExactArgs(1),
		RunE: runCountsCmd,
	}

	cmd.Flags().String("source", "", "Source name in the model counts (defaults to target.name)")

	return cmd
}

func runCountsCmd(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.sync()

	source, err := cmd.Flags().GetString("source")
	if err != nil {
		return err
	}
	if source == "" {
		source = e.cfg.Target.Name
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	spectra, err := counts.Decode(f)
	if err != nil {
		return err
	}
	m, err := counts.Merge(source, spectra...)
	if err != nil {
		return err
	}
	return printCounts(cmd.OutOrStdout(), m)
}

func printCounts(w io.Writer, m *counts.Merged) error {
	res, resErr := m.Residuals()
	other := m.Other()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "E [MeV]\tdE\tObserved\tSource\tOther\tTotal\tResidual\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t--\t--------\t------\t-----\t-----\t--------\n"); err != nil {
		return err
	}
	for i := 0; i < m.Len(); i++ {
		e, de := m.Energy(i)
		if _, err := fmt.Fprintf(tw, "%.4g\t%.4g\t%.0f +/- %.2f\t%.2f\t%.2f\t%.2f\t%+.3f +/- %.3f\n",
			e, de, m.Observed[i], m.ObservedErr[i], m.Source[i], other[i], m.Total[i], res[i], resErr[i]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

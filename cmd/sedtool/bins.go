package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-sed/internal/store"
	"github.com/cwbudde/algo-sed/sed"
	"github.com/cwbudde/algo-sed/sed/bins"
)

// NewBinsCmd creates the bins command.
func NewBinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bins",
		Short: "Collect per-energy-bin fit results into SED points",
		Long: `Read the fit result of every energy bin from
<out>/Ebin<N>/<target>_<i>.<format>, convert it to an SED point with its
error bar or upper limit, print the points and write them to
<plotname>.Ebin.dat.

Bins whose result is missing or incomplete are reported as warnings and
skipped. With blocks.enabled set the points are also segmented into
Bayesian blocks, as the blocks command does.`,
		Args: cobra.NoArgs,
		RunE: runBinsCmd,
	}
	return cmd
}

func runBinsCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.sync()

	pts, err := aggregate(cmd, e)
	if err != nil {
		return err
	}

	rows := pts.Rows()
	path := e.cfg.PlotBase() + ".Ebin.dat"
	if err := writeFile(path, func(w io.Writer) error { return bins.WriteTable(w, rows) }); err != nil {
		return err
	}
	e.logger.Info("bin table written", zap.String("path", path), zap.Int("rows", len(rows)))

	if err := printBins(cmd.OutOrStdout(), pts); err != nil {
		return err
	}
	if e.cfg.Blocks.Enabled {
		if err := segment(cmd, e, pts, e.cfg.Blocks.P0); err != nil {
			return err
		}
	}

	nan := math.NaN()
	return e.archive(cmd.Context(), store.Run{
		Source: e.cfg.Target.Name,
		Model:  e.cfg.Target.Spectrum,
		Emin:   e.cfg.Energy.Emin,
		Emax:   e.cfg.Energy.Emax,
		Points: pts.Len(),
		Decorrelation: sed.Decorrelation{
			Index: -1, Energy: nan, Flux: nan, FluxError: nan, SED: nan, SEDError: nan,
		},
	}, store.BinsFromPoints(pts))
}

func aggregate(cmd *cobra.Command, e *env) (*bins.Points, error) {
	if e.cfg.Ebin.NumEnergyBins == 0 {
		return nil, errors.New("no energy bins configured (set Ebin.NumEnergyBins)")
	}
	agg := bins.NewAggregator(bins.FileReader{},
		bins.WithLogger(e.logger),
		bins.WithConcurrency(e.cfg.Ebin.Concurrency))
	return agg.Aggregate(cmd.Context(), e.cfg.BinPaths())
}

func printBins(w io.Writer, pts *bins.Points) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Bin\tE [MeV]\tE2dN/dE [erg/cm2/s]\t-Err\t+Err\tError\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "---\t-------\t-------------------\t----\t----\t-----\n"); err != nil {
		return err
	}
	for i := 0; i < pts.Len(); i++ {
		var err error
		switch {
		case !pts.Valid[i]:
			_, err = fmt.Fprintf(tw, "%d\t-\t-\t-\t-\tunavailable\n", i)
		case pts.UpperLimit[i]:
			_, err = fmt.Fprintf(tw, "%d\t%.4g\t< %.4e\t-\t-\tupper limit\n", i, pts.Energy[i], pts.Flux[i])
		default:
			_, err = fmt.Fprintf(tw, "%d\t%.4g\t%.4e\t%.4e\t%.4e\t%s\n",
				i, pts.Energy[i], pts.Flux[i], pts.FluxErrMinus[i], pts.FluxErrPlus[i], pts.ErrorKind[i])
		}
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

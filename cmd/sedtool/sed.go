package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-sed/internal/config"
	"github.com/cwbudde/algo-sed/internal/store"
	"github.com/cwbudde/algo-sed/sed"
)

// NewSEDCmd creates the sed command.
func NewSEDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sed",
		Short: "Compute the SED curve and its error band",
		Long: `Compute E²·dN/dE of the fitted model over a log-spaced energy grid together
with its 1-sigma error from the fit covariance, and report the decorrelation
energy where the relative error is smallest.

The curve is written to <plotname>.dat. With --butterfly the closed error
contour is written to <plotname>.butterfly.dat.`,
		Args: cobra.NoArgs,
		RunE: runSEDCmd,
	}

	cmd.Flags().String("fit", "", "Fit result file (overrides sed.fitfile)")
	cmd.Flags().Bool("butterfly", false, "Also write the error contour")
	cmd.Flags().Bool("exp-grid", false, "Build the grid by repeated multiplication instead of logspace")

	return cmd
}

func runSEDCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.sync()

	fitPath, err := cmd.Flags().GetString("fit")
	if err != nil {
		return err
	}
	if fitPath == "" {
		fitPath = e.cfg.FitPath()
	}
	butterfly, err := cmd.Flags().GetBool("butterfly")
	if err != nil {
		return err
	}
	expGrid, err := cmd.Flags().GetBool("exp-grid")
	if err != nil {
		return err
	}

	fit, err := config.LoadFit(fitPath)
	if err != nil {
		return err
	}

	grid, err := buildGrid(e.cfg, expGrid)
	if err != nil {
		return err
	}
	comp, err := sed.NewComputer(grid, fit.Oracle, fit.Covariance)
	if err != nil {
		return err
	}

	source := fit.Source
	if source == "" {
		source = e.cfg.Target.Name
	}
	res := sed.NewResult(comp, sed.WithSource(source), sed.WithLogger(e.logger))
	if err := res.Report(); err != nil {
		return err
	}

	base := e.cfg.PlotBase()
	if err := writeFile(base+".dat", res.WriteTable); err != nil {
		return err
	}
	e.logger.Info("SED table written", zap.String("path", base+".dat"))

	if butterfly {
		pts, err := res.Points()
		if err != nil {
			return err
		}
		energies, values := sed.Butterfly(pts)
		err = writeFile(base+".butterfly.dat", func(w io.Writer) error {
			return writeColumns(w, energies, values)
		})
		if err != nil {
			return err
		}
	}

	dec, err := res.Decorrelation()
	if err != nil {
		return err
	}
	if err := printDecorrelation(cmd.OutOrStdout(), source, dec); err != nil {
		return err
	}

	return e.archive(cmd.Context(), store.Run{
		Source:        source,
		Model:         fit.Model,
		Emin:          grid.Emin(),
		Emax:          grid.Emax(),
		Points:        grid.Len(),
		Decorrelation: dec,
	}, nil)
}

func buildGrid(cfg *config.Config, exp bool) (*sed.Grid, error) {
	p := cfg.SEDParams()
	if exp {
		return sed.NewExpGrid(p.Emin, p.Emax, p.N)
	}
	return p.Grid()
}

func printDecorrelation(w io.Writer, source string, dec sed.Decorrelation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Source\tE_dec [MeV]\tdN/dE [ph/cm2/s/MeV]\tE2dN/dE [erg/cm2/s]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "------\t-----------\t--------------------\t-------------------\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "%s\t%.4g\t%.4e +/- %.4e\t%.4e +/- %.4e\n",
		source, dec.Energy, dec.Flux, dec.FluxError, dec.SED, dec.SEDError); err != nil {
		return err
	}
	return tw.Flush()
}

// writeColumns writes paired columns in the SED table number format.
func writeColumns(w io.Writer, a, b []float64) error {
	for i := range a {
		if _, err := fmt.Fprintf(w, "%12.4e  %12.4e\n", a[i], b[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeFile creates path, including its directory, and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // output path comes from the run configuration
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

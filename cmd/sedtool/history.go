package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-sed/internal/store"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Long: `List SED runs stored in the archive configured by archive.path, newest
first. By default only runs of target.name are shown.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("all", "a", false, "List runs of every source")
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs (0 for all)")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.sync()

	if e.cfg.Archive.Path == "" {
		return errors.New("no archive configured (set archive.path)")
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	s, err := store.Open(e.cfg.Archive.Path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = s.Close() }()

	source := e.cfg.Target.Name
	if all {
		source = ""
	}
	runs, err := s.ListRuns(cmd.Context(), source, limit)
	if err != nil {
		return err
	}
	return printRuns(cmd.OutOrStdout(), runs)
}

func printRuns(w io.Writer, runs []store.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "ID\tCreated\tSource\tModel\tPoints\tE_dec [MeV]\tE2dN/dE [erg/cm2/s]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--\t-------\t------\t-----\t------\t-----------\t-------------------\n"); err != nil {
		return err
	}
	for _, r := range runs {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.4g\t%.4e\n",
			r.ID, r.CreatedAt.Format(time.DateTime), r.Source, r.Model, r.Points,
			r.Decorrelation.Energy, r.Decorrelation.SED); err != nil {
			return err
		}
	}
	return tw.Flush()
}

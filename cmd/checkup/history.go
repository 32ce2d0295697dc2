package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/checkup/internal/evaluator"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/storage/postgres"
)

func (a *app) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <farmer> <farm>",
		Short: "List recorded report summaries, newest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd, args[0], args[1])
		},
	}
}

func (a *app) runHistory(cmd *cobra.Command, farmer, farm string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled {
		return errDatabaseDisabled
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), dbTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	list, err := pool.Reports().ListByFarmer(ctx, farmer, farm)
	if err != nil {
		return err
	}
	return writeHistory(cmd.OutOrStdout(), farmer, farm, list)
}

// writeHistory prints one row per summary with its achievement tally.
func writeHistory(w io.Writer, farmer, farm string, list []postgres.Summary) error {
	if len(list) == 0 {
		_, err := fmt.Fprintf(w, "No reports recorded for %s of %s Farm\n", farmer, farm)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORDED\tDATE\tACHIEVEMENTS\tGRANDPA\tCANDLES")
	for _, s := range list {
		sat, total := tally(s.Counts)
		fmt.Fprintf(tw, "%s\tDay %d of %s, Year %d\t%d/%d\t%d/%d\t%d\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Day, s.Season, s.Year,
			sat, total,
			s.GrandpaScore, evaluator.MaxGrandpaScore,
			s.Candles,
		)
	}
	return tw.Flush()
}

func tally(counts map[report.Category]postgres.SectionCount) (satisfied, total int) {
	for _, c := range counts {
		satisfied += c.Satisfied
		total += c.Total
	}
	return satisfied, total
}

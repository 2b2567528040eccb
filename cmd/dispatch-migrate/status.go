package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dentalops/dispatch-migrate/journal"
)

func newStatusCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent migration runs from the local journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jr, err := journal.Open(cmd.Context(), a.cfg.JournalPath)
			if err != nil {
				return err
			}
			defer jr.Close()

			runs, err := jr.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no recorded runs")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tENTITY\tPHASE\tMIGRATED\tSKIPPED\tFAILED\tRESULT")
			for _, r := range runs {
				result := "ok"
				if r.Error != "" {
					result = r.Error
				}
				phase := r.Phase
				if r.DryRun {
					phase += " (dry-run)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.StartedAt.Local().Format(time.DateTime),
					r.Entity, phase, r.Migrated, r.Skipped, r.Failed, result)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dentalops/dispatch-migrate/lifecycle"
	"github.com/dentalops/dispatch-migrate/report"
)

func newBackfillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill <entity>...|all",
		Short: "Migrate only the records the differential pass found missing",
		Long: `Run the differential pass and migrate only the legacy ids present in the
source but missing from the target. Safe to run repeatedly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := parseEntities(args)
			if err != nil {
				return err
			}

			ctx, cancel := lifecycle.Context(cmd.Context(), a.log)
			defer cancel()

			conns, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer conns.close(cmd.Context())

			reports, results, runErr := a.newRunner(conns).Backfill(ctx, entities)
			report.DiffSummary(os.Stdout, results)
			if len(reports) > 0 {
				os.Stdout.WriteString("\n")
				report.Summary(os.Stdout, reports)
			}
			return runErr
		},
	}
}

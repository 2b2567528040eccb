package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dentalops/dispatch-migrate/lifecycle"
	"github.com/dentalops/dispatch-migrate/report"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <entity>...|all",
		Short: "Compare source and target legacy id sets",
		Long: `Compare the legacy id set in the source with the legacy_*_id columns in
the target and report missing and orphaned records. Performs no writes.`,
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

			results, runErr := a.newRunner(conns).Verify(ctx, entities)
			report.DiffSummary(os.Stdout, results)
			return runErr
		},
	}
}

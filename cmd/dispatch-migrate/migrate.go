package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dentalops/dispatch-migrate/lifecycle"
	"github.com/dentalops/dispatch-migrate/report"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <entity>...|all",
		Short: "Copy legacy records into the target schema",
		Long: `Copy legacy records into the target schema.

Entities run in dependency order regardless of the order given. Rows whose
legacy id already exists in the target are skipped, so re-running is safe.`,
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

			reports, runErr := a.newRunner(conns).Migrate(ctx, entities)
			report.Summary(os.Stdout, reports)
			return runErr
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/dentalops/dispatch-migrate/target"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the target schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply the embedded target schema migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return target.SchemaUp(a.cfg.TargetDSN)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which target schema migrations have been applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return target.SchemaStatus(a.cfg.TargetDSN)
			},
		},
	)
	return cmd
}

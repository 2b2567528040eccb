package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/config"
	"github.com/dentalops/dispatch-migrate/journal"
	"github.com/dentalops/dispatch-migrate/metrics"
	"github.com/dentalops/dispatch-migrate/runner"
	"github.com/dentalops/dispatch-migrate/source"
	"github.com/dentalops/dispatch-migrate/target"
)

// app carries state shared by all subcommands.
type app struct {
	cfg config.Config
	log *logrus.Logger

	envFile   string
	dryRun    bool
	batchSize int
	only      []int64
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "dispatch-migrate",
		Short:         "Migrate the legacy dispatch schema to the new Postgres backend",
		Long:          "One-shot batch migration of the legacy Django dispatch_*/auth_user tables into the normalized Supabase-hosted schema, with differential verify and backfill.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "path to a .env file (default: ./.env if present)")
	cmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "read and transform but write nothing")
	cmd.PersistentFlags().IntVar(&a.batchSize, "batch-size", 0, "override MIGRATION_BATCH_SIZE")
	cmd.PersistentFlags().Int64SliceVar(&a.only, "only", nil, "restrict to these legacy ids")

	cmd.AddCommand(
		newMigrateCmd(a),
		newVerifyCmd(a),
		newBackfillCmd(a),
		newStatusCmd(a),
		newSchemaCmd(a),
	)
	return cmd
}

// setup loads configuration and the logger. Runs before every subcommand.
func (a *app) setup() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.batchSize > 0 {
		cfg.BatchSize = a.batchSize
	}
	a.cfg = cfg

	a.log = logrus.New()
	a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	a.log.SetLevel(level)
	return nil
}

// connections holds the open handles for one invocation.
type connections struct {
	src     *source.DB
	pool    *target.Pool
	jr      *journal.Journal
	metrics *metrics.Server
}

// open dials the source and target databases and the journal.
func (a *app) open(ctx context.Context) (*connections, error) {
	src, err := source.Open(a.cfg.SourceDriver, a.cfg.SourceDSN)
	if err != nil {
		return nil, err
	}

	pool, err := target.Connect(ctx, a.cfg.TargetDSN)
	if err != nil {
		src.Close()
		return nil, err
	}

	jr, err := journal.Open(ctx, a.cfg.JournalPath)
	if err != nil {
		pool.Close()
		src.Close()
		return nil, err
	}

	c := &connections{src: src, pool: pool, jr: jr}
	if a.cfg.MetricsAddr != "" {
		c.metrics = metrics.NewServer(a.cfg.MetricsAddr)
		c.metrics.Start()
	}
	return c, nil
}

func (c *connections) close(ctx context.Context) {
	if c.metrics != nil {
		_ = c.metrics.Shutdown(ctx)
	}
	_ = c.jr.Close()
	c.pool.Close()
	_ = c.src.Close()
}

// newRunner builds the runner over the open connections.
func (a *app) newRunner(c *connections) *runner.Runner {
	var w target.Writer = target.NewSQLWriter(c.pool)
	if a.cfg.UseREST {
		w = target.NewRESTWriter(a.cfg.SupabaseURL, a.cfg.SupabaseKey)
	}

	return runner.New(runner.Config{
		Source:     c.src,
		Lookup:     c.pool,
		Writer:     w,
		Journal:    c.jr,
		Log:        a.log,
		BatchSize:  a.cfg.BatchSize,
		BatchDelay: a.cfg.BatchDelay,
		DryRun:     a.dryRun,
		Only:       a.onlySet(),
	})
}

// onlySet converts the --only flag to the runner restriction form.
func (a *app) onlySet() map[migrate.LegacyID]struct{} {
	if len(a.only) == 0 {
		return nil
	}
	set := make(map[migrate.LegacyID]struct{}, len(a.only))
	for _, id := range a.only {
		set[migrate.LegacyID(id)] = struct{}{}
	}
	return set
}

// parseEntities resolves command arguments to entities. The single argument
// "all" selects every migratable entity.
func parseEntities(args []string) ([]migrate.Entity, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("specify one or more entities, or \"all\"")
	}
	if len(args) == 1 && args[0] == "all" {
		return append([]migrate.Entity(nil), migrate.EntityOrder...), nil
	}

	known := make(map[migrate.Entity]struct{}, len(migrate.EntityOrder))
	for _, e := range migrate.EntityOrder {
		known[e] = struct{}{}
	}

	var entities []migrate.Entity
	for _, arg := range args {
		e := migrate.Entity(arg)
		if _, ok := known[e]; !ok {
			return nil, fmt.Errorf("%w: %s", migrate.ErrUnknownEntity, arg)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

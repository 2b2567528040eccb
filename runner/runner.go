// Package runner executes entity migrations in dependency order. It is the
// orchestrator for full migrations, differential verification, and backfill.
package runner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/diff"
	"github.com/dentalops/dispatch-migrate/entity"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/journal"
	"github.com/dentalops/dispatch-migrate/metrics"
	"github.com/dentalops/dispatch-migrate/target"
)

// SourceDB combines the paged readers with the ID-set query used by the
// differential pass.
type SourceDB interface {
	entity.Source
	IDs(ctx context.Context, e migrate.Entity) ([]migrate.LegacyID, error)
}

// Config holds configuration for the Runner.
type Config struct {
	// Source is the legacy database (required).
	Source SourceDB

	// Lookup preloads existing-ID sets and foreign-key maps (required).
	Lookup entity.Lookup

	// Writer inserts rows into the target (required unless DryRun).
	Writer target.Writer

	// Journal records completed runs (optional).
	Journal *journal.Journal

	// Log is for observability (optional; defaults to the standard logger).
	Log logrus.FieldLogger

	// BatchSize is the page size for fetches and inserts (default: 500).
	BatchSize int

	// BatchDelay is the fixed pause between batches (default: 250ms).
	BatchDelay time.Duration

	// DryRun performs all reads and transforms but no writes.
	DryRun bool

	// Only restricts migrations to these legacy IDs (optional). Backfill
	// supplies its own restriction from the differential pass.
	Only map[migrate.LegacyID]struct{}
}

// Runner coordinates entity migrations.
type Runner struct {
	cfg Config
}

// New creates a Runner, applying defaults for unset values.
func New(cfg Config) *Runner {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 500
	}
	if cfg.BatchDelay == 0 {
		cfg.BatchDelay = 250 * time.Millisecond
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	if cfg.DryRun {
		cfg.Writer = target.NopWriter{}
	}
	return &Runner{cfg: cfg}
}

// Migrate runs the migrators for the requested entities in dependency
// order. Reports cover every entity that ran, including a partial report
// for the entity during which an abort or cancellation happened.
func (r *Runner) Migrate(ctx context.Context, entities []migrate.Entity) ([]migrate.Report, error) {
	return r.run(ctx, entities, migrate.PhaseMigrate, nil)
}

// Verify computes the differential between source and target for the
// requested entities. It performs no writes.
func (r *Runner) Verify(ctx context.Context, entities []migrate.Entity) ([]diff.Result, error) {
	ordered, err := orderEntities(entities)
	if err != nil {
		return nil, err
	}

	var results []diff.Result
	for _, e := range ordered {
		res, err := r.verifyOne(ctx, e)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Backfill runs the differential pass and then migrates only the missing
// legacy IDs for each requested entity.
func (r *Runner) Backfill(ctx context.Context, entities []migrate.Entity) ([]migrate.Report, []diff.Result, error) {
	ordered, err := orderEntities(entities)
	if err != nil {
		return nil, nil, err
	}

	var (
		reports []migrate.Report
		results []diff.Result
	)
	for _, e := range ordered {
		res, err := r.verifyOne(ctx, e)
		if err != nil {
			return reports, results, err
		}
		results = append(results, res)

		if len(res.Missing) == 0 {
			r.cfg.Log.WithField("entity", e).Info("nothing to backfill")
			continue
		}

		reps, err := r.run(ctx, []migrate.Entity{e}, migrate.PhaseBackfill, res.MissingSet())
		reports = append(reports, reps...)
		if err != nil {
			return reports, results, err
		}
	}
	return reports, results, nil
}

func (r *Runner) run(ctx context.Context, entities []migrate.Entity, phase migrate.Phase, only map[migrate.LegacyID]struct{}) ([]migrate.Report, error) {
	ordered, err := orderEntities(entities)
	if err != nil {
		return nil, err
	}
	if only == nil {
		only = r.cfg.Only
	}

	var reports []migrate.Report
	for _, e := range ordered {
		m, err := entity.ByEntity(e)
		if err != nil {
			return reports, err
		}

		maps, err := r.loadMaps(ctx, m)
		if err != nil {
			return reports, fmt.Errorf("load id maps for %s: %w", e, err)
		}

		deps := &entity.Deps{
			Source:     r.cfg.Source,
			Lookup:     r.cfg.Lookup,
			Writer:     r.cfg.Writer,
			Maps:       maps,
			Log:        r.cfg.Log,
			Phase:      phase,
			BatchSize:  r.cfg.BatchSize,
			BatchDelay: r.cfg.BatchDelay,
			DryRun:     r.cfg.DryRun,
			Only:       only,
		}

		r.cfg.Log.WithFields(logrus.Fields{"entity": e, "phase": phase, "dry_run": r.cfg.DryRun}).Info("starting entity run")

		rep, runErr := m.Run(ctx, deps)
		if r.cfg.Journal != nil && !rep.StartedAt.IsZero() {
			// Journal writes use a fresh context so a cancelled run is still
			// recorded.
			if jerr := r.cfg.Journal.Record(context.WithoutCancel(ctx), rep, runErr); jerr != nil {
				r.cfg.Log.WithError(jerr).Warn("journal write failed")
			}
		}
		reports = append(reports, rep)

		if runErr != nil {
			return reports, fmt.Errorf("%s %s: %w", phase, e, runErr)
		}

		r.cfg.Log.WithFields(logrus.Fields{
			"entity":   e,
			"migrated": rep.Migrated,
			"skipped":  rep.Skipped,
			"failed":   rep.Failed,
			"duration": rep.Duration().Round(time.Millisecond),
		}).Info("entity run complete")
	}
	return reports, nil
}

func (r *Runner) verifyOne(ctx context.Context, e migrate.Entity) (diff.Result, error) {
	t, err := entity.Table(e)
	if err != nil {
		return diff.Result{}, err
	}

	srcIDs, err := r.cfg.Source.IDs(ctx, e)
	if err != nil {
		return diff.Result{}, fmt.Errorf("verify %s: %w", e, err)
	}
	tgtIDs, err := r.cfg.Lookup.LegacyIDSet(ctx, t.Table, t.LegacyColumn)
	if err != nil {
		return diff.Result{}, fmt.Errorf("verify %s: %w", e, err)
	}

	res := diff.Compare(e, srcIDs, tgtIDs)
	metrics.NewCollector(string(e)).SetDiff(len(res.Missing), len(res.Orphaned))

	r.cfg.Log.WithFields(logrus.Fields{
		"entity":   e,
		"source":   res.SourceCount,
		"target":   res.TargetCount,
		"missing":  len(res.Missing),
		"orphaned": len(res.Orphaned),
	}).Info("differential computed")
	return res, nil
}

// loadMaps preloads the legacy-ID to UUID maps for a migrator's
// dependencies. An empty map is only a warning: optional foreign keys
// resolve to NULL and required ones fail per record.
func (r *Runner) loadMaps(ctx context.Context, m entity.Migrator) (*idmap.Set, error) {
	set := idmap.NewSet()
	for _, dep := range m.Dependencies() {
		t, err := entity.Table(dep)
		if err != nil {
			return nil, err
		}
		pairs, err := r.cfg.Lookup.LegacyUUIDMap(ctx, t.Table, t.LegacyColumn)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			r.cfg.Log.WithFields(logrus.Fields{"entity": m.Entity(), "dependency": dep}).Warn("dependency has no migrated rows")
		}
		set.Add(idmap.FromPairs(dep, pairs))
	}
	return set, nil
}

// orderEntities validates and sorts the requested entities into canonical
// dependency order, dropping duplicates.
func orderEntities(entities []migrate.Entity) ([]migrate.Entity, error) {
	pos := make(map[migrate.Entity]int, len(migrate.EntityOrder))
	for i, e := range migrate.EntityOrder {
		pos[e] = i
	}

	seen := make(map[migrate.Entity]struct{}, len(entities))
	var ordered []migrate.Entity
	for _, e := range entities {
		if _, ok := pos[e]; !ok {
			return nil, fmt.Errorf("%w: %s", migrate.ErrUnknownEntity, e)
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		ordered = append(ordered, e)
	}

	sort.Slice(ordered, func(i, j int) bool { return pos[ordered[i]] < pos[ordered[j]] })
	return ordered, nil
}

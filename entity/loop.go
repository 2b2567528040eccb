package entity

import (
	"context"
	"time"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/metrics"
)

// batch accumulates one page of transformed rows and its counters.
type batch struct {
	rows    []map[string]any
	fetched int
	skipped int
	failed  int
	last    migrate.LegacyID
}

// seen records that a legacy row was fetched and advances the cursor.
func (b *batch) seen(id migrate.LegacyID) {
	b.fetched++
	if id > b.last {
		b.last = id
	}
}

// skip counts a row left alone (already migrated or outside a restriction).
func (b *batch) skip() {
	b.skipped++
}

// fail counts a row that could not be transformed.
func (b *batch) fail() {
	b.failed++
}

// add queues a transformed row for insertion.
func (b *batch) add(row map[string]any) {
	b.rows = append(b.rows, row)
}

// fetchFunc fills a batch with the page of legacy rows after the cursor.
type fetchFunc func(ctx context.Context, after migrate.LegacyID, b *batch) error

// loop drives the sequential batch cycle shared by all migrators: fetch a
// page, insert it, pause, repeat. Cancellation is honored between batches;
// per-batch insert failures are counted and the loop continues.
type loop struct {
	d      *Deps
	entity migrate.Entity
	table  string
	col    *metrics.Collector
}

func newLoop(d *Deps, e migrate.Entity, table string) *loop {
	return &loop{
		d:      d,
		entity: e,
		table:  table,
		col:    metrics.NewCollector(string(e)),
	}
}

func (l *loop) run(ctx context.Context, fetch fetchFunc) (migrate.Report, error) {
	phase := l.d.Phase
	if phase == "" {
		phase = migrate.PhaseMigrate
	}

	rep := migrate.Report{
		Entity:    l.entity,
		Phase:     phase,
		DryRun:    l.d.DryRun,
		StartedAt: time.Now(),
	}
	l.col.IncRuns(string(phase))

	log := l.d.Log.WithField("entity", l.entity)

	var after migrate.LegacyID
	for {
		if err := ctx.Err(); err != nil {
			rep.FinishedAt = time.Now()
			return rep, err
		}

		start := time.Now()
		b := &batch{}
		if err := fetch(ctx, after, b); err != nil {
			rep.FinishedAt = time.Now()
			return rep, err
		}
		if b.fetched == 0 {
			break
		}

		rep.Fetched += b.fetched
		rep.Skipped += b.skipped
		rep.Failed += b.failed
		l.col.AddFetched(b.fetched)
		l.col.AddSkipped(b.skipped)
		l.col.AddFailed(b.failed)

		if len(b.rows) > 0 {
			n, err := l.d.Writer.Insert(ctx, l.table, b.rows)
			if err != nil {
				// The whole batch is counted failed and the run moves on to
				// the next page, mirroring the per-record error policy.
				rep.Failed += len(b.rows)
				l.col.AddFailed(len(b.rows))
				log.WithError(err).WithField("batch_size", len(b.rows)).Error("batch insert failed")
			} else {
				rep.Migrated += int(n)
				l.col.AddMigrated(int(n))
				if extra := len(b.rows) - int(n); extra > 0 {
					// Conflicts ignored by the writer count as skipped.
					rep.Skipped += extra
					l.col.AddSkipped(extra)
				}
			}
		}

		after = b.last
		rep.LastCursor = b.last
		l.col.IncBatches()
		l.col.ObserveBatch(time.Since(start))

		log.WithFields(map[string]any{
			"cursor":   b.last,
			"fetched":  rep.Fetched,
			"migrated": rep.Migrated,
			"skipped":  rep.Skipped,
			"failed":   rep.Failed,
		}).Debug("batch complete")

		if b.fetched < l.d.BatchSize {
			break
		}

		select {
		case <-ctx.Done():
			rep.FinishedAt = time.Now()
			return rep, ctx.Err()
		case <-time.After(l.d.BatchDelay):
		}
	}

	rep.FinishedAt = time.Now()
	return rep, nil
}

// Package entity implements one migrator per target entity. Every migrator
// follows the same shape: page through the legacy table, skip rows whose
// legacy ID already exists in the target, resolve foreign keys through the
// preloaded ID maps, transform field names and status enums, and insert in
// batches with a fixed delay between them.
package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/metrics"
	"github.com/dentalops/dispatch-migrate/source"
	"github.com/dentalops/dispatch-migrate/target"
)

// Source is the subset of source.DB the migrators read from.
type Source interface {
	Users(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyUser, error)
	Offices(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOffice, error)
	Doctors(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyDoctor, error)
	Patients(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyPatient, error)
	Orders(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOrder, error)
	Cases(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCase, error)
	CaseStates(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCaseState, error)
	Payments(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyPayment, error)
	Files(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyFile, error)
	Messages(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyMessage, error)
	CaseTemplates(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyCaseTemplate, error)
}

// Compile-time check that the real reader satisfies Source.
var _ Source = (*source.DB)(nil)

// Lookup is the subset of target.Pool used to preload existing-ID sets and
// foreign-key maps.
type Lookup interface {
	LegacyIDSet(ctx context.Context, table, column string) (map[migrate.LegacyID]struct{}, error)
	LegacyUUIDMap(ctx context.Context, table, column string) (map[migrate.LegacyID]string, error)
}

// Compile-time check that the real pool satisfies Lookup.
var _ Lookup = (*target.Pool)(nil)

// Deps carries everything a migrator needs for one run.
type Deps struct {
	// Source reads legacy rows.
	Source Source

	// Lookup preloads existing-ID sets from the target.
	Lookup Lookup

	// Writer inserts transformed rows. Use target.NopWriter for dry runs.
	Writer target.Writer

	// Maps resolves legacy foreign keys for the migrator's dependencies.
	Maps *idmap.Set

	// Log receives per-record failures and batch progress.
	Log logrus.FieldLogger

	// Phase tags the resulting report (defaults to migrate).
	Phase migrate.Phase

	// BatchSize is the page size for fetches and inserts.
	BatchSize int

	// BatchDelay is the fixed pause between batches.
	BatchDelay time.Duration

	// DryRun marks the report; callers must also swap in a NopWriter.
	DryRun bool

	// Only restricts the run to these legacy IDs. Nil means all rows.
	// Rows outside the restriction count as skipped.
	Only map[migrate.LegacyID]struct{}
}

// restricted reports whether a legacy ID falls outside the Only set.
func (d *Deps) restricted(id migrate.LegacyID) bool {
	if d.Only == nil {
		return false
	}
	_, ok := d.Only[id]
	return !ok
}

// Migrator migrates one entity from the legacy schema to the target.
type Migrator interface {
	// Entity returns the entity this migrator populates.
	Entity() migrate.Entity

	// Dependencies returns the entities whose ID maps must be loaded before
	// Run. They also define execution order for full migrations.
	Dependencies() []migrate.Entity

	// Run migrates the entity and returns the per-run counters. A non-nil
	// error means the run aborted; the report still covers the completed
	// batches. Per-record failures never abort the run.
	Run(ctx context.Context, d *Deps) (migrate.Report, error)
}

// All returns the registered migrators in dependency order.
func All() []Migrator {
	return []Migrator{
		Offices{},
		Profiles{},
		Doctors{},
		Patients{},
		Orders{},
		Cases{},
		CaseStates{},
		Payments{},
		Files{},
		Messages{},
		CaseTemplates{},
	}
}

// ByEntity returns the migrator for an entity.
func ByEntity(e migrate.Entity) (Migrator, error) {
	for _, m := range All() {
		if m.Entity() == e {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", migrate.ErrUnknownEntity, e)
}

// NewCollector exposes a metrics collector for an entity. Kept here so
// callers outside the package label collectors consistently.
func NewCollector(e migrate.Entity) *metrics.Collector {
	return metrics.NewCollector(string(e))
}

package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// CaseStates migrates the dispatch_casestate history table into case_states.
type CaseStates struct{}

func (CaseStates) Entity() migrate.Entity { return migrate.EntityCaseStates }

func (CaseStates) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityCases, migrate.EntityProfiles}
}

func (m CaseStates) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
	t, err := Table(m.Entity())
	if err != nil {
		return migrate.Report{}, err
	}
	existing, err := d.Lookup.LegacyIDSet(ctx, t.Table, t.LegacyColumn)
	if err != nil {
		return migrate.Report{}, err
	}

	l := newLoop(d, m.Entity(), t.Table)
	log := d.Log.WithField("entity", m.Entity())

	return l.run(ctx, func(ctx context.Context, after migrate.LegacyID, b *batch) error {
		rows, err := d.Source.CaseStates(ctx, after, d.BatchSize)
		if err != nil {
			return err
		}
		for _, r := range rows {
			id := migrate.LegacyID(r.ID)
			b.seen(id)
			if _, ok := existing[id]; ok || d.restricted(id) {
				b.skip()
				continue
			}
			row, err := caseStateRow(r, d.Maps)
			if err != nil {
				b.fail()
				log.WithError(err).WithField("legacy_id", r.ID).Warn("record failed")
				continue
			}
			b.add(row)
		}
		return nil
	})
}

// caseStateRow maps a legacy case-state history entry to a target row. The
// case link is required; the changing user is optional.
func caseStateRow(r source.LegacyCaseState, maps *idmap.Set) (map[string]any, error) {
	caseID, err := maps.UUID(migrate.EntityCases, migrate.LegacyID(r.CaseID))
	if err != nil {
		return nil, fmt.Errorf("case state %d: %w", r.ID, err)
	}
	state, err := CaseStatus(r.State)
	if err != nil {
		return nil, fmt.Errorf("case state %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":                  uuid.NewString(),
		"case_id":             caseID,
		"state":               state,
		"changed_by":          optionalRef(maps, migrate.EntityProfiles, r.ChangedByID),
		"note":                nullString(r.Note),
		"legacy_casestate_id": r.ID,
		"created_at":          r.Created,
	}, nil
}

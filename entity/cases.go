package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// Cases migrates dispatch_case rows into the cases table.
type Cases struct{}

func (Cases) Entity() migrate.Entity { return migrate.EntityCases }

func (Cases) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityOrders}
}

func (m Cases) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.Cases(ctx, after, d.BatchSize)
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
			row, err := caseRow(r, d.Maps)
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

// caseRow maps a legacy case to a target row. The order link is required.
func caseRow(r source.LegacyCase, maps *idmap.Set) (map[string]any, error) {
	orderID, err := maps.UUID(migrate.EntityOrders, migrate.LegacyID(r.OrderID))
	if err != nil {
		return nil, fmt.Errorf("case %d: %w", r.ID, err)
	}
	status, err := CaseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("case %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":             uuid.NewString(),
		"order_id":       orderID,
		"case_number":    r.CaseNumber,
		"status":         status,
		"due_date":       nullTime(r.DueDate),
		"legacy_case_id": r.ID,
		"created_at":     r.Created,
	}, nil
}

package entity

import (
	"context"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/source"
)

// Offices migrates dispatch_office rows into the offices table.
type Offices struct{}

func (Offices) Entity() migrate.Entity { return migrate.EntityOffices }

func (Offices) Dependencies() []migrate.Entity { return nil }

func (m Offices) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
	t, err := Table(m.Entity())
	if err != nil {
		return migrate.Report{}, err
	}
	existing, err := d.Lookup.LegacyIDSet(ctx, t.Table, t.LegacyColumn)
	if err != nil {
		return migrate.Report{}, err
	}

	l := newLoop(d, m.Entity(), t.Table)
	return l.run(ctx, func(ctx context.Context, after migrate.LegacyID, b *batch) error {
		rows, err := d.Source.Offices(ctx, after, d.BatchSize)
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
			b.add(officeRow(r))
		}
		return nil
	})
}

// officeRow maps a legacy office to a target row.
func officeRow(r source.LegacyOffice) map[string]any {
	return map[string]any{
		"id":               uuid.NewString(),
		"name":             r.Name,
		"address_line1":    r.Address1,
		"address_line2":    nullString(r.Address2),
		"city":             r.City,
		"state":            r.State,
		"zip_code":         r.ZipCode,
		"phone":            nullString(r.Phone),
		"is_active":        r.IsActive,
		"legacy_office_id": r.ID,
		"created_at":       r.Created,
	}
}

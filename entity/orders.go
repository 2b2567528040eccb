package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// Orders migrates dispatch_order rows into the orders table.
type Orders struct{}

func (Orders) Entity() migrate.Entity { return migrate.EntityOrders }

func (Orders) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityPatients, migrate.EntityDoctors, migrate.EntityOffices}
}

func (m Orders) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.Orders(ctx, after, d.BatchSize)
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
			row, err := orderRow(r, d.Maps)
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

// orderRow maps a legacy order to a target row. The patient link is
// required; doctor and office are optional.
func orderRow(r source.LegacyOrder, maps *idmap.Set) (map[string]any, error) {
	patientID, err := maps.UUID(migrate.EntityPatients, migrate.LegacyID(r.PatientID))
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", r.ID, err)
	}
	status, err := OrderStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":              uuid.NewString(),
		"patient_id":      patientID,
		"doctor_id":       optionalRef(maps, migrate.EntityDoctors, r.DoctorID),
		"office_id":       optionalRef(maps, migrate.EntityOffices, r.OfficeID),
		"status":          status,
		"notes":           nullString(r.Notes),
		"legacy_order_id": r.ID,
		"created_at":      r.Created,
		"updated_at":      r.Modified,
	}, nil
}

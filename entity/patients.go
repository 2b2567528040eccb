package entity

import (
	"context"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// Patients migrates dispatch_patient rows into the patients table.
type Patients struct{}

func (Patients) Entity() migrate.Entity { return migrate.EntityPatients }

func (Patients) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityOffices, migrate.EntityDoctors}
}

func (m Patients) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.Patients(ctx, after, d.BatchSize)
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
			b.add(patientRow(r, d.Maps))
		}
		return nil
	})
}

// patientRow maps a legacy patient to a target row. Both foreign keys are
// optional in the legacy schema.
func patientRow(r source.LegacyPatient, maps *idmap.Set) map[string]any {
	return map[string]any{
		"id":                uuid.NewString(),
		"office_id":         optionalRef(maps, migrate.EntityOffices, r.OfficeID),
		"doctor_id":         optionalRef(maps, migrate.EntityDoctors, r.DoctorID),
		"first_name":        r.FirstName,
		"last_name":         r.LastName,
		"birth_date":        nullTime(r.BirthDate),
		"gender":            nullString(r.Gender),
		"legacy_patient_id": r.ID,
		"created_at":        r.Created,
	}
}

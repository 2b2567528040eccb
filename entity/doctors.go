package entity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// Doctors migrates dispatch_doctor rows into the doctors table. The legacy
// table hangs off auth_user, so profiles must be migrated first.
type Doctors struct{}

func (Doctors) Entity() migrate.Entity { return migrate.EntityDoctors }

func (Doctors) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityProfiles, migrate.EntityOffices}
}

func (m Doctors) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.Doctors(ctx, after, d.BatchSize)
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
			row, err := doctorRow(r, d.Maps)
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

// doctorRow maps a legacy doctor to a target row. The auth_user link is
// required; an unmapped user fails the record. The office link is optional
// and resolves to NULL when the office was never migrated.
func doctorRow(r source.LegacyDoctor, maps *idmap.Set) (map[string]any, error) {
	profileID, err := maps.UUID(migrate.EntityProfiles, migrate.LegacyID(r.UserID))
	if err != nil {
		return nil, fmt.Errorf("doctor %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":               uuid.NewString(),
		"profile_id":       profileID,
		"office_id":        optionalRef(maps, migrate.EntityOffices, r.OfficeID),
		"license_number":   nullString(r.LicenseNumber),
		"specialty":        nullString(r.Specialty),
		"phone":            nullString(r.Phone),
		"legacy_doctor_id": r.ID,
		"created_at":       r.Created,
	}, nil
}

// optionalRef resolves a nullable legacy foreign key. NULL stays NULL, and an
// unmapped value also resolves to NULL: the legacy breadcrumb on the row is
// kept for later manual reconciliation.
func optionalRef(maps *idmap.Set, e migrate.Entity, fk sql.NullInt64) any {
	if !fk.Valid {
		return nil
	}
	uid, ok := maps.Get(e).Lookup(migrate.LegacyID(fk.Int64))
	if !ok {
		return nil
	}
	return uid
}

package entity

import (
	"context"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/source"
)

// Profiles migrates auth_user rows into the profiles table.
type Profiles struct{}

func (Profiles) Entity() migrate.Entity { return migrate.EntityProfiles }

func (Profiles) Dependencies() []migrate.Entity { return nil }

func (m Profiles) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.Users(ctx, after, d.BatchSize)
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
			b.add(profileRow(r))
		}
		return nil
	})
}

// profileRow maps a legacy auth_user to a target profile.
func profileRow(r source.LegacyUser) map[string]any {
	return map[string]any{
		"id":             uuid.NewString(),
		"username":       r.Username,
		"first_name":     r.FirstName,
		"last_name":      r.LastName,
		"email":          r.Email,
		"role":           profileRole(r.IsStaff),
		"is_active":      r.IsActive,
		"last_login_at":  nullTime(r.LastLogin),
		"legacy_user_id": r.ID,
		"created_at":     r.DateJoined,
	}
}

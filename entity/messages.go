package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// Messages migrates dispatch_message rows into the messages table.
type Messages struct{}

func (Messages) Entity() migrate.Entity { return migrate.EntityMessages }

func (Messages) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityCases, migrate.EntityProfiles}
}

func (m Messages) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.Messages(ctx, after, d.BatchSize)
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
			row, err := messageRow(r, d.Maps)
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

// messageRow maps a legacy message to a target row. Both the case and the
// sending user are required.
func messageRow(r source.LegacyMessage, maps *idmap.Set) (map[string]any, error) {
	caseID, err := maps.UUID(migrate.EntityCases, migrate.LegacyID(r.CaseID))
	if err != nil {
		return nil, fmt.Errorf("message %d: %w", r.ID, err)
	}
	senderID, err := maps.UUID(migrate.EntityProfiles, migrate.LegacyID(r.SenderID))
	if err != nil {
		return nil, fmt.Errorf("message %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":                uuid.NewString(),
		"case_id":           caseID,
		"sender_id":         senderID,
		"body":              r.Body,
		"is_read":           r.IsRead,
		"legacy_message_id": r.ID,
		"created_at":        r.Created,
	}, nil
}

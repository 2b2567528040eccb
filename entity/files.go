package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// Files migrates dispatch_file rows into the files table, rewriting legacy
// MEDIA_ROOT paths to the new storage bucket layout.
type Files struct{}

func (Files) Entity() migrate.Entity { return migrate.EntityFiles }

func (Files) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityCases, migrate.EntityProfiles}
}

func (m Files) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.Files(ctx, after, d.BatchSize)
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
			row, err := fileRow(r, d.Maps)
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

// fileRow maps a legacy file to a target row. The case link is required; the
// uploader is optional.
func fileRow(r source.LegacyFile, maps *idmap.Set) (map[string]any, error) {
	caseID, err := maps.UUID(migrate.EntityCases, migrate.LegacyID(r.CaseID))
	if err != nil {
		return nil, fmt.Errorf("file %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":             uuid.NewString(),
		"case_id":        caseID,
		"name":           r.Name,
		"storage_path":   storagePath(r.Path),
		"content_type":   nullString(r.ContentType),
		"size_bytes":     nullInt(r.SizeBytes),
		"uploaded_by":    optionalRef(maps, migrate.EntityProfiles, r.UploadedByID),
		"legacy_file_id": r.ID,
		"created_at":     r.Created,
	}, nil
}

package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// CaseTemplates migrates the dispatch_case_templates M2M junction into the
// case_templates table. Templates themselves are seeded out of band; their
// legacy-ID map is read from the target like any other dependency.
type CaseTemplates struct{}

func (CaseTemplates) Entity() migrate.Entity { return migrate.EntityCaseTemplates }

func (CaseTemplates) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityCases, migrate.EntityTemplates}
}

func (m CaseTemplates) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
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
		rows, err := d.Source.CaseTemplates(ctx, after, d.BatchSize)
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
			row, err := caseTemplateRow(r, d.Maps)
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

// caseTemplateRow maps a legacy junction row to a target row. Both sides of
// the junction are required.
func caseTemplateRow(r source.LegacyCaseTemplate, maps *idmap.Set) (map[string]any, error) {
	caseID, err := maps.UUID(migrate.EntityCases, migrate.LegacyID(r.CaseID))
	if err != nil {
		return nil, fmt.Errorf("case template %d: %w", r.ID, err)
	}
	templateID, err := maps.UUID(migrate.EntityTemplates, migrate.LegacyID(r.TemplateID))
	if err != nil {
		return nil, fmt.Errorf("case template %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":                 uuid.NewString(),
		"case_id":            caseID,
		"template_id":        templateID,
		"legacy_junction_id": r.ID,
	}, nil
}

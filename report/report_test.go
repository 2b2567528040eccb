package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/diff"
)

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, []migrate.Report{
		{Entity: migrate.EntityOffices, Phase: migrate.PhaseMigrate, Fetched: 10, Migrated: 8, Skipped: 2},
		{Entity: migrate.EntityPatients, Phase: migrate.PhaseMigrate, Fetched: 5, Migrated: 4, Failed: 1, DryRun: true},
	})

	out := buf.String()
	assert.Contains(t, out, "ENTITY")
	assert.Contains(t, out, "offices")
	assert.Contains(t, out, "migrate (dry-run)")
	assert.Contains(t, out, "12 migrated, 1 failed across 2 entities")
}

func TestSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, nil)
	assert.Equal(t, "nothing to report\n", buf.String())
}

func TestDiffSummary(t *testing.T) {
	var buf bytes.Buffer
	DiffSummary(&buf, []diff.Result{
		{Entity: migrate.EntityOrders, SourceCount: 4, TargetCount: 2, Missing: []migrate.LegacyID{3, 4}},
		{Entity: migrate.EntityCases, SourceCount: 2, TargetCount: 2},
	})

	out := buf.String()
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "orders missing legacy ids: 3, 4")
	assert.NotContains(t, out, "cases missing")
}

func TestPreviewIDs_Elides(t *testing.T) {
	ids := make([]migrate.LegacyID, 25)
	for i := range ids {
		ids[i] = migrate.LegacyID(i + 1)
	}

	out := previewIDs(ids, 20)
	assert.True(t, strings.HasSuffix(out, "... (5 more)"), out)
	assert.Contains(t, out, "1, 2, 3")
}

package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrate "github.com/dentalops/dispatch-migrate"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func testReport(entity migrate.Entity) migrate.Report {
	start := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	return migrate.Report{
		Entity:     entity,
		Phase:      migrate.PhaseMigrate,
		Fetched:    10,
		Migrated:   8,
		Skipped:    1,
		Failed:     1,
		LastCursor: 42,
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, testReport(migrate.EntityOffices), nil))
	require.NoError(t, j.Record(ctx, testReport(migrate.EntityPatients), errors.New("source gone")))

	runs, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "patients", runs[0].Entity)
	assert.Equal(t, "source gone", runs[0].Error)
	assert.Equal(t, "offices", runs[1].Entity)
	assert.Equal(t, "", runs[1].Error)
	assert.Equal(t, 8, runs[1].Migrated)
	assert.Equal(t, int64(42), runs[1].LastCursor)
	assert.Equal(t, testReport(migrate.EntityOffices).StartedAt, runs[1].StartedAt.UTC())
}

func TestJournal_RecentLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(ctx, testReport(migrate.EntityOrders), nil))
	}

	runs, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestJournal_LastCompleted(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	clean := testReport(migrate.EntityCases)
	require.NoError(t, j.Record(ctx, clean, nil))

	dry := testReport(migrate.EntityCases)
	dry.DryRun = true
	require.NoError(t, j.Record(ctx, dry, nil))

	failed := testReport(migrate.EntityCases)
	require.NoError(t, j.Record(ctx, failed, errors.New("aborted")))

	got, err := j.LastCompleted(ctx, migrate.EntityCases)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cases", got.Entity)
	assert.False(t, got.DryRun)
	assert.Equal(t, "", got.Error)
	assert.Equal(t, int64(1), got.ID, "dry runs and failures are passed over")
}

func TestJournal_LastCompletedNone(t *testing.T) {
	j := openTestJournal(t)

	got, err := j.LastCompleted(context.Background(), migrate.EntityFiles)
	require.NoError(t, err)
	assert.Nil(t, got)
}

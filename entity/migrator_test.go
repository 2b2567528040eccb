package entity

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/source"
	"github.com/dentalops/dispatch-migrate/target"
)

func testDeps(src *MockSource, lookup *MockLookup, w *target.MockWriter) *Deps {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &Deps{
		Source:     src,
		Lookup:     lookup,
		Writer:     w,
		Maps:       testMaps(nil),
		Log:        log,
		BatchSize:  2,
		BatchDelay: time.Millisecond,
	}
}

// pagedOffices serves legacy offices the way the keyset readers do: rows
// with IDs greater than the cursor, in order, up to the limit.
func pagedOffices(all []source.LegacyOffice) func(context.Context, migrate.LegacyID, int) ([]source.LegacyOffice, error) {
	return func(_ context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOffice, error) {
		var page []source.LegacyOffice
		for _, r := range all {
			if migrate.LegacyID(r.ID) > after {
				page = append(page, r)
			}
			if len(page) == limit {
				break
			}
		}
		return page, nil
	}
}

func legacyOffices(n int) []source.LegacyOffice {
	offices := make([]source.LegacyOffice, 0, n)
	for i := 1; i <= n; i++ {
		offices = append(offices, source.LegacyOffice{
			ID:       int64(i),
			Name:     "Office",
			Address1: "1 Main St",
			City:     "Springfield",
			State:    "IL",
			ZipCode:  "62701",
		})
	}
	return offices
}

func TestOffices_MigratesAllPages(t *testing.T) {
	src := &MockSource{OfficesFunc: pagedOffices(legacyOffices(5))}
	lookup := &MockLookup{}
	w := &target.MockWriter{}

	rep, err := Offices{}.Run(context.Background(), testDeps(src, lookup, w))

	require.NoError(t, err)
	assert.Equal(t, migrate.EntityOffices, rep.Entity)
	assert.Equal(t, migrate.PhaseMigrate, rep.Phase)
	assert.Equal(t, 5, rep.Fetched)
	assert.Equal(t, 5, rep.Migrated)
	assert.Equal(t, 0, rep.Skipped)
	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, migrate.LegacyID(5), rep.LastCursor)
	assert.Len(t, w.InsertCalls, 3)
	assert.Equal(t, "offices", w.InsertCalls[0].Table)
	assert.Len(t, w.Rows("offices"), 5)
	assert.Equal(t, []string{"offices"}, lookup.LegacyIDSetCalls)
}

func TestOffices_SkipsExistingLegacyIDs(t *testing.T) {
	src := &MockSource{OfficesFunc: pagedOffices(legacyOffices(5))}
	lookup := &MockLookup{
		LegacyIDSetFunc: func(ctx context.Context, table, column string) (map[migrate.LegacyID]struct{}, error) {
			return map[migrate.LegacyID]struct{}{2: {}, 4: {}}, nil
		},
	}
	w := &target.MockWriter{}

	rep, err := Offices{}.Run(context.Background(), testDeps(src, lookup, w))

	require.NoError(t, err)
	assert.Equal(t, 5, rep.Fetched)
	assert.Equal(t, 3, rep.Migrated)
	assert.Equal(t, 2, rep.Skipped)
	assert.Len(t, w.Rows("offices"), 3)
}

func TestOffices_OnlyRestriction(t *testing.T) {
	src := &MockSource{OfficesFunc: pagedOffices(legacyOffices(5))}
	w := &target.MockWriter{}

	d := testDeps(src, &MockLookup{}, w)
	d.Only = map[migrate.LegacyID]struct{}{3: {}}

	rep, err := Offices{}.Run(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, 5, rep.Fetched)
	assert.Equal(t, 1, rep.Migrated)
	assert.Equal(t, 4, rep.Skipped)

	rows := w.Rows("offices")
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0]["legacy_office_id"])
}

func TestOffices_BatchInsertErrorContinues(t *testing.T) {
	src := &MockSource{OfficesFunc: pagedOffices(legacyOffices(5))}
	w := &target.MockWriter{}

	calls := 0
	w.InsertFunc = func(ctx context.Context, table string, rows []map[string]any) (int64, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("connection reset")
		}
		return int64(len(rows)), nil
	}

	rep, err := Offices{}.Run(context.Background(), testDeps(src, &MockLookup{}, w))

	require.NoError(t, err)
	assert.Equal(t, 5, rep.Fetched)
	assert.Equal(t, 3, rep.Migrated)
	assert.Equal(t, 2, rep.Failed)
	assert.Equal(t, migrate.LegacyID(5), rep.LastCursor, "cursor advances past a failed batch")
}

func TestOffices_ConflictsCountAsSkipped(t *testing.T) {
	src := &MockSource{OfficesFunc: pagedOffices(legacyOffices(4))}
	w := &target.MockWriter{
		InsertFunc: func(ctx context.Context, table string, rows []map[string]any) (int64, error) {
			// One duplicate ignored per batch.
			return int64(len(rows) - 1), nil
		},
	}

	rep, err := Offices{}.Run(context.Background(), testDeps(src, &MockLookup{}, w))

	require.NoError(t, err)
	assert.Equal(t, 4, rep.Fetched)
	assert.Equal(t, 2, rep.Migrated)
	assert.Equal(t, 2, rep.Skipped)
}

func TestOffices_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &MockSource{OfficesFunc: pagedOffices(legacyOffices(5))}
	w := &target.MockWriter{}

	rep, err := Offices{}.Run(ctx, testDeps(src, &MockLookup{}, w))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rep.Fetched)
	assert.Empty(t, w.InsertCalls)
}

func TestOffices_SourceErrorAborts(t *testing.T) {
	src := &MockSource{
		OfficesFunc: func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyOffice, error) {
			return nil, errors.New("table not found")
		},
	}

	_, err := Offices{}.Run(context.Background(), testDeps(src, &MockLookup{}, &target.MockWriter{}))
	assert.EqualError(t, err, "table not found")
}

func TestDoctors_RecordFailureContinues(t *testing.T) {
	src := &MockSource{
		DoctorsFunc: func(ctx context.Context, after migrate.LegacyID, limit int) ([]source.LegacyDoctor, error) {
			if after > 0 {
				return nil, nil
			}
			return []source.LegacyDoctor{
				{ID: 1, UserID: 10},
				{ID: 2, UserID: 99}, // never migrated
			}, nil
		},
	}
	w := &target.MockWriter{}

	d := testDeps(src, &MockLookup{}, w)
	d.Maps = testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityProfiles: {10: "profile-uuid"},
	})

	rep, err := Doctors{}.Run(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, 2, rep.Fetched)
	assert.Equal(t, 1, rep.Migrated)
	assert.Equal(t, 1, rep.Failed)

	rows := w.Rows("doctors")
	require.Len(t, rows, 1)
	assert.Equal(t, "profile-uuid", rows[0]["profile_id"])
}

func TestAll_MatchesCanonicalOrder(t *testing.T) {
	all := All()
	require.Len(t, all, len(migrate.EntityOrder))
	for i, m := range all {
		assert.Equal(t, migrate.EntityOrder[i], m.Entity())
	}
}

func TestAll_DependenciesPrecede(t *testing.T) {
	pos := make(map[migrate.Entity]int)
	for i, e := range migrate.EntityOrder {
		pos[e] = i
	}

	for _, m := range All() {
		for _, dep := range m.Dependencies() {
			if dep == migrate.EntityTemplates {
				// Seeded out of band, not part of the run order.
				continue
			}
			assert.Less(t, pos[dep], pos[m.Entity()], "%s depends on %s", m.Entity(), dep)
		}
	}
}

func TestByEntity(t *testing.T) {
	m, err := ByEntity(migrate.EntityPayments)
	require.NoError(t, err)
	assert.Equal(t, migrate.EntityPayments, m.Entity())

	_, err = ByEntity(migrate.Entity("invoices"))
	assert.ErrorIs(t, err, migrate.ErrUnknownEntity)
}

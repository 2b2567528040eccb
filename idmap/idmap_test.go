package idmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrate "github.com/dentalops/dispatch-migrate"
)

func TestMap_PutAndLookup(t *testing.T) {
	m := New(migrate.EntityPatients)
	m.Put(1, "uuid-1")

	uid, ok := m.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "uuid-1", uid)

	_, ok = m.Lookup(2)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestMap_UUID(t *testing.T) {
	m := FromPairs(migrate.EntityOrders, map[migrate.LegacyID]string{7: "uuid-7"})

	uid, err := m.UUID(7)
	require.NoError(t, err)
	assert.Equal(t, "uuid-7", uid)

	_, err = m.UUID(8)
	assert.ErrorIs(t, err, migrate.ErrMappingNotFound)
	assert.Contains(t, err.Error(), "orders 8")
}

func TestSet_GetCreatesEmptyMap(t *testing.T) {
	s := NewSet()

	m := s.Get(migrate.EntityOffices)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Len())

	m.Put(3, "uuid-3")
	uid, err := s.UUID(migrate.EntityOffices, 3)
	require.NoError(t, err)
	assert.Equal(t, "uuid-3", uid)
}

func TestSet_AddReplaces(t *testing.T) {
	s := NewSet()
	s.Add(FromPairs(migrate.EntityCases, map[migrate.LegacyID]string{1: "old"}))
	s.Add(FromPairs(migrate.EntityCases, map[migrate.LegacyID]string{1: "new"}))

	uid, err := s.UUID(migrate.EntityCases, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", uid)
}

func TestSet_UUIDMissingEntity(t *testing.T) {
	s := NewSet()
	_, err := s.UUID(migrate.EntityDoctors, 12)
	assert.ErrorIs(t, err, migrate.ErrMappingNotFound)
}

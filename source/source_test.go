package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrate "github.com/dentalops/dispatch-migrate"
)

func TestTable(t *testing.T) {
	tests := []struct {
		entity migrate.Entity
		table  string
	}{
		{migrate.EntityProfiles, "auth_user"},
		{migrate.EntityOffices, "dispatch_office"},
		{migrate.EntityCaseStates, "dispatch_casestate"},
		{migrate.EntityCaseTemplates, "dispatch_case_templates"},
	}
	for _, tt := range tests {
		table, err := Table(tt.entity)
		require.NoError(t, err)
		assert.Equal(t, tt.table, table)
	}
}

func TestTable_UnknownEntity(t *testing.T) {
	_, err := Table(migrate.Entity("invoices"))
	assert.ErrorIs(t, err, migrate.ErrUnknownEntity)
}

func TestTable_EveryOrderedEntityHasATable(t *testing.T) {
	for _, e := range migrate.EntityOrder {
		_, err := Table(e)
		assert.NoError(t, err, e)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("sqlite3", "legacy.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported source driver")
}

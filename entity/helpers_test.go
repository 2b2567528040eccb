package entity

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"125.50", 12550},
		{"0.05", 5},
		{"40", 4000},
		{"40.", 4000},
		{"7.5", 750},
		{"-3.07", -307},
		{".99", 99},
		{"0.00", 0},
		{"99999999.99", 9999999999},
	}
	for _, tt := range tests {
		got, err := amountToCents(tt.in)
		require.NoError(t, err, "amount %q", tt.in)
		assert.Equal(t, tt.want, got, "amount %q", tt.in)
	}
}

func TestAmountToCents_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "1.234", "abc", "12.x"} {
		_, err := amountToCents(in)
		assert.Error(t, err, "amount %q", in)
	}
}

func TestStoragePath(t *testing.T) {
	assert.Equal(t, "legacy/cases/42/scan.stl", storagePath("cases/42/scan.stl"))
	assert.Equal(t, "legacy/cases/42/scan.stl", storagePath("/cases/42/scan.stl"))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullString(sql.NullString{}))
	assert.Equal(t, "x", nullString(sql.NullString{String: "x", Valid: true}))

	assert.Nil(t, nullInt(sql.NullInt64{}))
	assert.Equal(t, int64(7), nullInt(sql.NullInt64{Int64: 7, Valid: true}))

	assert.Nil(t, nullTime(sql.NullTime{}))
	ts := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, ts, nullTime(sql.NullTime{Time: ts, Valid: true}))
}

package entity

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// nullString converts a NULLable legacy text column to an insert value.
func nullString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}

// nullTime converts a NULLable legacy timestamp column to an insert value.
func nullTime(t sql.NullTime) any {
	if !t.Valid {
		return nil
	}
	return t.Time
}

// nullInt converts a NULLable legacy integer column to an insert value.
func nullInt(n sql.NullInt64) any {
	if !n.Valid {
		return nil
	}
	return n.Int64
}

// amountToCents converts a Django DecimalField string (e.g. "125.50",
// "-3.07", "40") to integer cents. More than two fraction digits is an
// error; the legacy schema stored decimal(10,2).
func amountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	switch len(frac) {
	case 0:
		frac = "00"
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, fmt.Errorf("amount %q has more than two fraction digits", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	cents := w*100 + f
	if negative {
		cents = -cents
	}
	return cents, nil
}

// storagePath rewrites a legacy MEDIA_ROOT-relative FileField path to its
// location in the new storage bucket. Legacy uploads were copied verbatim
// under the legacy/ prefix.
func storagePath(path string) string {
	return "legacy/" + strings.TrimPrefix(path, "/")
}

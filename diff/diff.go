// Package diff implements the differential migration pass: comparing the
// legacy ID set in the source with the legacy_*_id set in the target to find
// rows that still need backfilling.
package diff

import (
	"sort"

	migrate "github.com/dentalops/dispatch-migrate"
)

// Result describes the gap between source and target for one entity.
type Result struct {
	// Entity is the compared entity.
	Entity migrate.Entity

	// SourceCount is the number of rows in the legacy table.
	SourceCount int

	// TargetCount is the number of target rows carrying a legacy ID.
	TargetCount int

	// Missing lists legacy IDs present in the source but absent from the
	// target, in ascending order. These are backfill candidates.
	Missing []migrate.LegacyID

	// Orphaned lists legacy IDs present in the target but absent from the
	// source, in ascending order. These usually indicate source-side
	// deletions after the original migration.
	Orphaned []migrate.LegacyID
}

// InSync reports whether source and target agree exactly.
func (r Result) InSync() bool {
	return len(r.Missing) == 0 && len(r.Orphaned) == 0
}

// Compare computes the differential between a source ID list and a target
// legacy-ID set.
func Compare(entity migrate.Entity, source []migrate.LegacyID, target map[migrate.LegacyID]struct{}) Result {
	res := Result{
		Entity:      entity,
		SourceCount: len(source),
		TargetCount: len(target),
	}

	sourceSet := make(map[migrate.LegacyID]struct{}, len(source))
	for _, id := range source {
		sourceSet[id] = struct{}{}
		if _, ok := target[id]; !ok {
			res.Missing = append(res.Missing, id)
		}
	}
	for id := range target {
		if _, ok := sourceSet[id]; !ok {
			res.Orphaned = append(res.Orphaned, id)
		}
	}

	sort.Slice(res.Missing, func(i, j int) bool { return res.Missing[i] < res.Missing[j] })
	sort.Slice(res.Orphaned, func(i, j int) bool { return res.Orphaned[i] < res.Orphaned[j] })
	return res
}

// MissingSet returns the missing IDs as a set, the form the backfill
// restriction expects.
func (r Result) MissingSet() map[migrate.LegacyID]struct{} {
	set := make(map[migrate.LegacyID]struct{}, len(r.Missing))
	for _, id := range r.Missing {
		set[id] = struct{}{}
	}
	return set
}

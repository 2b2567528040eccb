// Package metrics exposes prometheus instrumentation for migration runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecordsFetchedTotal tracks legacy rows read from the source.
var RecordsFetchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_migrate_records_fetched_total",
		Help: "Legacy rows read from the source database",
	},
	[]string{"entity"},
)

// RecordsMigratedTotal tracks rows written to the target.
var RecordsMigratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_migrate_records_migrated_total",
		Help: "Rows inserted into the target database",
	},
	[]string{"entity"},
)

// RecordsSkippedTotal tracks rows skipped because their legacy ID already
// exists in the target.
var RecordsSkippedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_migrate_records_skipped_total",
		Help: "Rows skipped as already migrated",
	},
	[]string{"entity"},
)

// RecordsFailedTotal tracks rows that could not be transformed or written.
var RecordsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_migrate_records_failed_total",
		Help: "Rows that failed transformation or insertion",
	},
	[]string{"entity"},
)

// BatchesTotal tracks completed batches.
var BatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_migrate_batches_total",
		Help: "Completed migration batches",
	},
	[]string{"entity"},
)

// RunsTotal tracks entity runs by phase.
var RunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_migrate_runs_total",
		Help: "Entity runs by phase",
	},
	[]string{"entity", "phase"},
)

// DiffMissing tracks the latest differential gap per entity.
var DiffMissing = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dispatch_migrate_diff_missing",
		Help: "Legacy IDs present in the source but missing from the target",
	},
	[]string{"entity"},
)

// DiffOrphaned tracks target rows whose legacy ID no longer exists in the
// source.
var DiffOrphaned = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dispatch_migrate_diff_orphaned",
		Help: "Target rows whose legacy ID is absent from the source",
	},
	[]string{"entity"},
)

// BatchDuration tracks per-batch wall time.
var BatchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "dispatch_migrate_batch_duration_seconds",
		Help:    "Wall time per migration batch",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"entity"},
)

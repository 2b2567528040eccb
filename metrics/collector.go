package metrics

import "time"

// Collector wraps the package metrics with a pre-filled entity label.
type Collector struct {
	entity string
}

// NewCollector creates a Collector for the given entity.
func NewCollector(entity string) *Collector {
	return &Collector{entity: entity}
}

// AddFetched increments the fetched counter.
func (c *Collector) AddFetched(n int) {
	RecordsFetchedTotal.WithLabelValues(c.entity).Add(float64(n))
}

// AddMigrated increments the migrated counter.
func (c *Collector) AddMigrated(n int) {
	RecordsMigratedTotal.WithLabelValues(c.entity).Add(float64(n))
}

// AddSkipped increments the skipped counter.
func (c *Collector) AddSkipped(n int) {
	RecordsSkippedTotal.WithLabelValues(c.entity).Add(float64(n))
}

// AddFailed increments the failed counter.
func (c *Collector) AddFailed(n int) {
	RecordsFailedTotal.WithLabelValues(c.entity).Add(float64(n))
}

// IncBatches increments the batch counter.
func (c *Collector) IncBatches() {
	BatchesTotal.WithLabelValues(c.entity).Inc()
}

// IncRuns increments the run counter for a phase.
func (c *Collector) IncRuns(phase string) {
	RunsTotal.WithLabelValues(c.entity, phase).Inc()
}

// SetDiff records the latest differential gap sizes.
func (c *Collector) SetDiff(missing, orphaned int) {
	DiffMissing.WithLabelValues(c.entity).Set(float64(missing))
	DiffOrphaned.WithLabelValues(c.entity).Set(float64(orphaned))
}

// ObserveBatch records one batch duration.
func (c *Collector) ObserveBatch(d time.Duration) {
	BatchDuration.WithLabelValues(c.entity).Observe(d.Seconds())
}

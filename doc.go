// Package migrate defines the shared types for the dispatch-migrate toolkit,
// which copies records from the legacy Django dispatch_* schema into the
// normalized Supabase-hosted Postgres schema.
//
// Subpackages:
//
//   - source: read-only paged access to the legacy database
//   - target: destination writers (SQL and Supabase REST) and schema tooling
//   - idmap: in-memory legacy-ID to UUID lookup maps
//   - entity: per-entity migrators and row transforms
//   - diff: differential source/target comparison
//   - runner: dependency-ordered execution of entity migrators
//   - journal: local sqlite record of past runs
//   - report: console summaries
//   - metrics: prometheus instrumentation
//   - lifecycle: signal-driven cancellation
package migrate

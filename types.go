package migrate

import "time"

// Entity identifies one migratable entity in the target schema.
type Entity string

const (
	// EntityOffices maps dispatch_office rows to the offices table.
	EntityOffices Entity = "offices"

	// EntityProfiles maps auth_user rows to the profiles table.
	EntityProfiles Entity = "profiles"

	// EntityDoctors maps dispatch_doctor rows to the doctors table.
	EntityDoctors Entity = "doctors"

	// EntityPatients maps dispatch_patient rows to the patients table.
	EntityPatients Entity = "patients"

	// EntityOrders maps dispatch_order rows to the orders table.
	EntityOrders Entity = "orders"

	// EntityCases maps dispatch_case rows to the cases table.
	EntityCases Entity = "cases"

	// EntityCaseStates maps dispatch_casestate rows to the case_states table.
	EntityCaseStates Entity = "case_states"

	// EntityPayments maps dispatch_payment rows to the payments table.
	EntityPayments Entity = "payments"

	// EntityFiles maps dispatch_file rows to the files table.
	EntityFiles Entity = "files"

	// EntityMessages maps dispatch_message rows to the messages table.
	EntityMessages Entity = "messages"

	// EntityCaseTemplates maps dispatch_case_templates junction rows to the
	// case_templates table. The templates table itself is populated out of
	// band; only the junction is migrated here.
	EntityCaseTemplates Entity = "case_templates"

	// EntityTemplates is not migrated by this toolkit. It exists so the
	// case_templates junction can declare it as a dependency and have its
	// legacy-ID map loaded from the target.
	EntityTemplates Entity = "templates"
)

// EntityOrder is the canonical dependency order for full migrations.
// Parents always precede children so foreign-key lookups resolve.
var EntityOrder = []Entity{
	EntityOffices,
	EntityProfiles,
	EntityDoctors,
	EntityPatients,
	EntityOrders,
	EntityCases,
	EntityCaseStates,
	EntityPayments,
	EntityFiles,
	EntityMessages,
	EntityCaseTemplates,
}

// LegacyID is an integer primary key from the legacy Django schema.
// It is preserved on every migrated row in a legacy_*_id column.
type LegacyID int64

// Phase identifies what kind of run produced a report.
type Phase string

const (
	// PhaseMigrate is a full forward migration of an entity.
	PhaseMigrate Phase = "migrate"

	// PhaseVerify is a differential comparison with no writes.
	PhaseVerify Phase = "verify"

	// PhaseBackfill is a migration restricted to missing legacy IDs.
	PhaseBackfill Phase = "backfill"
)

// Report holds the counters for one entity run.
type Report struct {
	// Entity is the entity this report covers.
	Entity Entity

	// Phase is the kind of run that produced this report.
	Phase Phase

	// Fetched is the number of legacy rows read from the source.
	Fetched int

	// Migrated is the number of rows written to the target.
	Migrated int

	// Skipped is the number of rows whose legacy ID already existed in the
	// target, or that fell outside a backfill restriction.
	Skipped int

	// Failed is the number of rows that could not be transformed or written.
	Failed int

	// LastCursor is the highest legacy ID processed, for resumable runs.
	LastCursor LegacyID

	// DryRun indicates no writes were performed.
	DryRun bool

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed or was cancelled.
	FinishedAt time.Time
}

// Duration returns the elapsed wall time of the run.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

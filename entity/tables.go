package entity

import (
	"fmt"

	migrate "github.com/dentalops/dispatch-migrate"
)

// TargetTable names the destination table and its legacy breadcrumb column
// for an entity.
type TargetTable struct {
	Table        string
	LegacyColumn string
}

var targetTables = map[migrate.Entity]TargetTable{
	migrate.EntityOffices:       {"offices", "legacy_office_id"},
	migrate.EntityProfiles:      {"profiles", "legacy_user_id"},
	migrate.EntityDoctors:       {"doctors", "legacy_doctor_id"},
	migrate.EntityPatients:      {"patients", "legacy_patient_id"},
	migrate.EntityOrders:        {"orders", "legacy_order_id"},
	migrate.EntityCases:         {"cases", "legacy_case_id"},
	migrate.EntityCaseStates:    {"case_states", "legacy_casestate_id"},
	migrate.EntityPayments:      {"payments", "legacy_payment_id"},
	migrate.EntityFiles:         {"files", "legacy_file_id"},
	migrate.EntityMessages:      {"messages", "legacy_message_id"},
	migrate.EntityCaseTemplates: {"case_templates", "legacy_junction_id"},
	migrate.EntityTemplates:     {"templates", "legacy_template_id"},
}

// Table returns the destination table mapping for an entity.
func Table(e migrate.Entity) (TargetTable, error) {
	t, ok := targetTables[e]
	if !ok {
		return TargetTable{}, fmt.Errorf("%w: %s", migrate.ErrUnknownEntity, e)
	}
	return t, nil
}

package source

import (
	"context"

	migrate "github.com/dentalops/dispatch-migrate"
)

// Users returns the next page of auth_user rows after the given ID.
func (d *DB) Users(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyUser, error) {
	var rows []LegacyUser
	err := d.selectPage(ctx, &rows, `
		SELECT id, username, first_name, last_name, email, is_active, is_staff, date_joined, last_login
		FROM auth_user
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Offices returns the next page of dispatch_office rows after the given ID.
func (d *DB) Offices(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyOffice, error) {
	var rows []LegacyOffice
	err := d.selectPage(ctx, &rows, `
		SELECT id, name, address_line1, address_line2, city, state, zip_code, phone, is_active, created
		FROM dispatch_office
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Doctors returns the next page of dispatch_doctor rows after the given ID.
func (d *DB) Doctors(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyDoctor, error) {
	var rows []LegacyDoctor
	err := d.selectPage(ctx, &rows, `
		SELECT id, user_id, office_id, license_number, specialty, phone, created
		FROM dispatch_doctor
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Patients returns the next page of dispatch_patient rows after the given ID.
func (d *DB) Patients(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyPatient, error) {
	var rows []LegacyPatient
	err := d.selectPage(ctx, &rows, `
		SELECT id, office_id, doctor_id, first_name, last_name, birth_date, gender, created
		FROM dispatch_patient
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Orders returns the next page of dispatch_order rows after the given ID.
func (d *DB) Orders(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyOrder, error) {
	var rows []LegacyOrder
	err := d.selectPage(ctx, &rows, `
		SELECT id, patient_id, doctor_id, office_id, status, notes, created, modified
		FROM dispatch_order
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Cases returns the next page of dispatch_case rows after the given ID.
func (d *DB) Cases(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyCase, error) {
	var rows []LegacyCase
	err := d.selectPage(ctx, &rows, `
		SELECT id, order_id, case_number, status, due_date, created
		FROM dispatch_case
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// CaseStates returns the next page of dispatch_casestate rows after the given ID.
func (d *DB) CaseStates(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyCaseState, error) {
	var rows []LegacyCaseState
	err := d.selectPage(ctx, &rows, `
		SELECT id, case_id, state, changed_by_id, note, created
		FROM dispatch_casestate
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Payments returns the next page of dispatch_payment rows after the given ID.
func (d *DB) Payments(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyPayment, error) {
	var rows []LegacyPayment
	err := d.selectPage(ctx, &rows, `
		SELECT id, order_id, amount, method, status, paid_at, created
		FROM dispatch_payment
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Files returns the next page of dispatch_file rows after the given ID.
func (d *DB) Files(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyFile, error) {
	var rows []LegacyFile
	err := d.selectPage(ctx, &rows, `
		SELECT id, case_id, name, file, content_type, size_bytes, uploaded_by_id, created
		FROM dispatch_file
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// Messages returns the next page of dispatch_message rows after the given ID.
func (d *DB) Messages(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyMessage, error) {
	var rows []LegacyMessage
	err := d.selectPage(ctx, &rows, `
		SELECT id, case_id, sender_id, body, is_read, created
		FROM dispatch_message
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

// CaseTemplates returns the next page of dispatch_case_templates junction
// rows after the given ID.
func (d *DB) CaseTemplates(ctx context.Context, after migrate.LegacyID, limit int) ([]LegacyCaseTemplate, error) {
	var rows []LegacyCaseTemplate
	err := d.selectPage(ctx, &rows, `
		SELECT id, case_id, template_id
		FROM dispatch_case_templates
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	return rows, err
}

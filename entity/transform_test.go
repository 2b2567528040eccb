package entity

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

func testMaps(pairs map[migrate.Entity]map[migrate.LegacyID]string) *idmap.Set {
	set := idmap.NewSet()
	for e, p := range pairs {
		set.Add(idmap.FromPairs(e, p))
	}
	return set
}

func TestOfficeRow(t *testing.T) {
	created := time.Date(2019, 6, 1, 9, 0, 0, 0, time.UTC)
	row := officeRow(source.LegacyOffice{
		ID:       17,
		Name:     "North Dental",
		Address1: "1 Main St",
		City:     "Springfield",
		State:    "IL",
		ZipCode:  "62701",
		Phone:    sql.NullString{String: "555-0100", Valid: true},
		IsActive: true,
		Created:  created,
	})

	assert.Equal(t, "North Dental", row["name"])
	assert.Equal(t, "1 Main St", row["address_line1"])
	assert.Nil(t, row["address_line2"])
	assert.Equal(t, "555-0100", row["phone"])
	assert.Equal(t, int64(17), row["legacy_office_id"])
	assert.Equal(t, created, row["created_at"])

	_, err := uuid.Parse(row["id"].(string))
	assert.NoError(t, err)
}

func TestProfileRow(t *testing.T) {
	joined := time.Date(2018, 2, 14, 8, 30, 0, 0, time.UTC)
	row := profileRow(source.LegacyUser{
		ID:         5,
		Username:   "drsmith",
		FirstName:  "Ada",
		LastName:   "Smith",
		Email:      "ada@example.com",
		IsActive:   true,
		IsStaff:    true,
		DateJoined: joined,
	})

	assert.Equal(t, "drsmith", row["username"])
	assert.Equal(t, "staff", row["role"])
	assert.Nil(t, row["last_login_at"])
	assert.Equal(t, int64(5), row["legacy_user_id"])
	assert.Equal(t, joined, row["created_at"])
}

func TestDoctorRow(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityProfiles: {10: "profile-uuid"},
		migrate.EntityOffices:  {3: "office-uuid"},
	})

	row, err := doctorRow(source.LegacyDoctor{
		ID:       1,
		UserID:   10,
		OfficeID: sql.NullInt64{Int64: 3, Valid: true},
	}, maps)
	require.NoError(t, err)
	assert.Equal(t, "profile-uuid", row["profile_id"])
	assert.Equal(t, "office-uuid", row["office_id"])
	assert.Equal(t, int64(1), row["legacy_doctor_id"])
}

func TestDoctorRow_UnmappedUserFails(t *testing.T) {
	maps := testMaps(nil)

	_, err := doctorRow(source.LegacyDoctor{ID: 2, UserID: 99}, maps)
	assert.ErrorIs(t, err, migrate.ErrMappingNotFound)
}

func TestDoctorRow_UnmappedOfficeResolvesToNull(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityProfiles: {10: "profile-uuid"},
	})

	row, err := doctorRow(source.LegacyDoctor{
		ID:       3,
		UserID:   10,
		OfficeID: sql.NullInt64{Int64: 44, Valid: true},
	}, maps)
	require.NoError(t, err)
	assert.Nil(t, row["office_id"])
}

func TestPatientRow_NullForeignKeysStayNull(t *testing.T) {
	row := patientRow(source.LegacyPatient{
		ID:        8,
		FirstName: "Max",
		LastName:  "Roe",
	}, testMaps(nil))

	assert.Nil(t, row["office_id"])
	assert.Nil(t, row["doctor_id"])
	assert.Equal(t, int64(8), row["legacy_patient_id"])
}

func TestOrderRow(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityPatients: {20: "patient-uuid"},
	})

	row, err := orderRow(source.LegacyOrder{
		ID:        30,
		PatientID: 20,
		Status:    4,
	}, maps)
	require.NoError(t, err)
	assert.Equal(t, "patient-uuid", row["patient_id"])
	assert.Equal(t, "shipped", row["status"])
	assert.Nil(t, row["doctor_id"])
	assert.Nil(t, row["office_id"])
}

func TestOrderRow_UnknownStatusFails(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityPatients: {20: "patient-uuid"},
	})

	_, err := orderRow(source.LegacyOrder{ID: 31, PatientID: 20, Status: 42}, maps)
	assert.ErrorIs(t, err, migrate.ErrUnknownStatusCode)
}

func TestCaseStateRow(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityCases:    {7: "case-uuid"},
		migrate.EntityProfiles: {5: "profile-uuid"},
	})

	row, err := caseStateRow(source.LegacyCaseState{
		ID:          50,
		CaseID:      7,
		State:       3,
		ChangedByID: sql.NullInt64{Int64: 5, Valid: true},
		Note:        sql.NullString{String: "waiting on impressions", Valid: true},
	}, maps)
	require.NoError(t, err)
	assert.Equal(t, "case-uuid", row["case_id"])
	assert.Equal(t, "on_hold", row["state"])
	assert.Equal(t, "profile-uuid", row["changed_by"])
	assert.Equal(t, "waiting on impressions", row["note"])
}

func TestPaymentRow(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityOrders: {30: "order-uuid"},
	})

	row, err := paymentRow(source.LegacyPayment{
		ID:      60,
		OrderID: 30,
		Amount:  "125.50",
		Status:  2,
	}, maps)
	require.NoError(t, err)
	assert.Equal(t, "order-uuid", row["order_id"])
	assert.Equal(t, int64(12550), row["amount_cents"])
	assert.Equal(t, "paid", row["status"])
}

func TestPaymentRow_BadAmountFails(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityOrders: {30: "order-uuid"},
	})

	_, err := paymentRow(source.LegacyPayment{ID: 61, OrderID: 30, Amount: "1.234", Status: 1}, maps)
	assert.Error(t, err)
}

func TestFileRow(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityCases: {7: "case-uuid"},
	})

	row, err := fileRow(source.LegacyFile{
		ID:     70,
		CaseID: 7,
		Name:   "scan.stl",
		Path:   "cases/7/scan.stl",
	}, maps)
	require.NoError(t, err)
	assert.Equal(t, "case-uuid", row["case_id"])
	assert.Equal(t, "legacy/cases/7/scan.stl", row["storage_path"])
	assert.Nil(t, row["uploaded_by"])
}

func TestMessageRow_RequiresCaseAndSender(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityCases: {7: "case-uuid"},
	})

	_, err := messageRow(source.LegacyMessage{ID: 80, CaseID: 7, SenderID: 5}, maps)
	assert.ErrorIs(t, err, migrate.ErrMappingNotFound)

	maps.Add(idmap.FromPairs(migrate.EntityProfiles, map[migrate.LegacyID]string{5: "profile-uuid"}))
	row, err := messageRow(source.LegacyMessage{ID: 80, CaseID: 7, SenderID: 5, Body: "ready"}, maps)
	require.NoError(t, err)
	assert.Equal(t, "profile-uuid", row["sender_id"])
	assert.Equal(t, "ready", row["body"])
}

func TestCaseTemplateRow(t *testing.T) {
	maps := testMaps(map[migrate.Entity]map[migrate.LegacyID]string{
		migrate.EntityCases:     {7: "case-uuid"},
		migrate.EntityTemplates: {2: "template-uuid"},
	})

	row, err := caseTemplateRow(source.LegacyCaseTemplate{ID: 90, CaseID: 7, TemplateID: 2}, maps)
	require.NoError(t, err)
	assert.Equal(t, "case-uuid", row["case_id"])
	assert.Equal(t, "template-uuid", row["template_id"])
	assert.Equal(t, int64(90), row["legacy_junction_id"])
}

package source

import (
	"database/sql"
	"time"
)

// LegacyUser is a row from auth_user.
type LegacyUser struct {
	ID         int64        `db:"id"`
	Username   string       `db:"username"`
	FirstName  string       `db:"first_name"`
	LastName   string       `db:"last_name"`
	Email      string       `db:"email"`
	IsActive   bool         `db:"is_active"`
	IsStaff    bool         `db:"is_staff"`
	DateJoined time.Time    `db:"date_joined"`
	LastLogin  sql.NullTime `db:"last_login"`
}

// LegacyOffice is a row from dispatch_office.
type LegacyOffice struct {
	ID       int64          `db:"id"`
	Name     string         `db:"name"`
	Address1 string         `db:"address_line1"`
	Address2 sql.NullString `db:"address_line2"`
	City     string         `db:"city"`
	State    string         `db:"state"`
	ZipCode  string         `db:"zip_code"`
	Phone    sql.NullString `db:"phone"`
	IsActive bool           `db:"is_active"`
	Created  time.Time      `db:"created"`
}

// LegacyDoctor is a row from dispatch_doctor.
type LegacyDoctor struct {
	ID            int64          `db:"id"`
	UserID        int64          `db:"user_id"`
	OfficeID      sql.NullInt64  `db:"office_id"`
	LicenseNumber sql.NullString `db:"license_number"`
	Specialty     sql.NullString `db:"specialty"`
	Phone         sql.NullString `db:"phone"`
	Created       time.Time      `db:"created"`
}

// LegacyPatient is a row from dispatch_patient.
type LegacyPatient struct {
	ID        int64          `db:"id"`
	OfficeID  sql.NullInt64  `db:"office_id"`
	DoctorID  sql.NullInt64  `db:"doctor_id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	BirthDate sql.NullTime   `db:"birth_date"`
	Gender    sql.NullString `db:"gender"`
	Created   time.Time      `db:"created"`
}

// LegacyOrder is a row from dispatch_order.
type LegacyOrder struct {
	ID        int64          `db:"id"`
	PatientID int64          `db:"patient_id"`
	DoctorID  sql.NullInt64  `db:"doctor_id"`
	OfficeID  sql.NullInt64  `db:"office_id"`
	Status    int            `db:"status"`
	Notes     sql.NullString `db:"notes"`
	Created   time.Time      `db:"created"`
	Modified  time.Time      `db:"modified"`
}

// LegacyCase is a row from dispatch_case.
type LegacyCase struct {
	ID         int64        `db:"id"`
	OrderID    int64        `db:"order_id"`
	CaseNumber string       `db:"case_number"`
	Status     int          `db:"status"`
	DueDate    sql.NullTime `db:"due_date"`
	Created    time.Time    `db:"created"`
}

// LegacyCaseState is a row from dispatch_casestate, the per-case status
// history table.
type LegacyCaseState struct {
	ID          int64          `db:"id"`
	CaseID      int64          `db:"case_id"`
	State       int            `db:"state"`
	ChangedByID sql.NullInt64  `db:"changed_by_id"`
	Note        sql.NullString `db:"note"`
	Created     time.Time      `db:"created"`
}

// LegacyPayment is a row from dispatch_payment. Amount is the raw decimal
// string as stored by Django's DecimalField.
type LegacyPayment struct {
	ID      int64          `db:"id"`
	OrderID int64          `db:"order_id"`
	Amount  string         `db:"amount"`
	Method  sql.NullString `db:"method"`
	Status  int            `db:"status"`
	PaidAt  sql.NullTime   `db:"paid_at"`
	Created time.Time      `db:"created"`
}

// LegacyFile is a row from dispatch_file. Path is the FileField storage key
// relative to the legacy MEDIA_ROOT.
type LegacyFile struct {
	ID           int64          `db:"id"`
	CaseID       int64          `db:"case_id"`
	Name         string         `db:"name"`
	Path         string         `db:"file"`
	ContentType  sql.NullString `db:"content_type"`
	SizeBytes    sql.NullInt64  `db:"size_bytes"`
	UploadedByID sql.NullInt64  `db:"uploaded_by_id"`
	Created      time.Time      `db:"created"`
}

// LegacyMessage is a row from dispatch_message.
type LegacyMessage struct {
	ID       int64     `db:"id"`
	CaseID   int64     `db:"case_id"`
	SenderID int64     `db:"sender_id"`
	Body     string    `db:"body"`
	IsRead   bool      `db:"is_read"`
	Created  time.Time `db:"created"`
}

// LegacyCaseTemplate is a row from the dispatch_case_templates M2M junction.
type LegacyCaseTemplate struct {
	ID         int64 `db:"id"`
	CaseID     int64 `db:"case_id"`
	TemplateID int64 `db:"template_id"`
}

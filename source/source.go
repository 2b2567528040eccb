// Package source provides read-only, paged access to the legacy Django
// database. Legacy deployments ran on both PostgreSQL and MySQL, so both
// drivers are supported behind the same reader.
package source

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	migrate "github.com/dentalops/dispatch-migrate"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// legacy table names, keyed by entity, for ID-set and count queries.
var legacyTables = map[migrate.Entity]string{
	migrate.EntityProfiles:      "auth_user",
	migrate.EntityOffices:       "dispatch_office",
	migrate.EntityDoctors:       "dispatch_doctor",
	migrate.EntityPatients:      "dispatch_patient",
	migrate.EntityOrders:        "dispatch_order",
	migrate.EntityCases:         "dispatch_case",
	migrate.EntityCaseStates:    "dispatch_casestate",
	migrate.EntityPayments:      "dispatch_payment",
	migrate.EntityFiles:         "dispatch_file",
	migrate.EntityMessages:      "dispatch_message",
	migrate.EntityCaseTemplates: "dispatch_case_templates",
}

// DB is a read-only handle to the legacy database.
type DB struct {
	db *sqlx.DB
}

// Open connects to the legacy database and verifies the connection.
// driver must be postgres or mysql.
func Open(driver, dsn string) (*DB, error) {
	if driver != "postgres" && driver != "mysql" {
		return nil, fmt.Errorf("unsupported source driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to legacy database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Table returns the legacy table name backing an entity.
func Table(entity migrate.Entity) (string, error) {
	t, ok := legacyTables[entity]
	if !ok {
		return "", fmt.Errorf("%w: %s", migrate.ErrUnknownEntity, entity)
	}
	return t, nil
}

// IDs returns all primary keys of the legacy table for an entity, in
// ascending order. Used by the differential pass.
func (d *DB) IDs(ctx context.Context, entity migrate.Entity) ([]migrate.LegacyID, error) {
	table, err := Table(entity)
	if err != nil {
		return nil, err
	}

	var ids []migrate.LegacyID
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY id", table)
	if err := d.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("select ids from %s: %w", table, err)
	}
	return ids, nil
}

// Count returns the number of rows in the legacy table for an entity.
func (d *DB) Count(ctx context.Context, entity migrate.Entity) (int64, error) {
	table, err := Table(entity)
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := d.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// selectPage runs a keyset-paginated select into dest. The query must use ?
// placeholders; Rebind adapts them to the active driver.
func (d *DB) selectPage(ctx context.Context, dest any, query string, after migrate.LegacyID, limit int) error {
	q := d.db.Rebind(query)
	if err := d.db.SelectContext(ctx, dest, q, int64(after), limit); err != nil {
		return fmt.Errorf("select page: %w", err)
	}
	return nil
}

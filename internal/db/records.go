package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aidmqan/mqan-console/internal/catalog"
)

// IsSeeded reports whether any catalog records are stored.
func (db *DB) IsSeeded() (bool, error) {
	var count int
	if err := db.conn.QueryRow(selectRecordCount).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count records: %w", err)
	}
	return count > 0, nil
}

// SeedCatalog stores every collection of c in one transaction. With reset the
// existing records are removed first; without it records at the same
// position are replaced.
func (db *DB) SeedCatalog(c *catalog.Catalog, reset bool) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if reset {
		if _, err := tx.Exec(deleteRecords); err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}
	}

	stmt, err := tx.Prepare(insertRecord)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserts := []error{
		insertAll(stmt, "alerts", c.Alerts),
		insertAll(stmt, "system_alerts", c.SystemAlerts),
		insertAll(stmt, "users", c.Users),
		insertAll(stmt, "roles", c.Roles),
		insertAll(stmt, "hospitals", c.Hospitals),
		insertAll(stmt, "test_results", c.TestResults),
		insertAll(stmt, "standards", c.Standards),
		insertAll(stmt, "audits", c.Audits),
		insertAll(stmt, "violations", c.Violations),
		insertAll(stmt, "nodes", c.Nodes),
		insertAll(stmt, "monthly", c.Monthly),
		insertAll(stmt, "performance", c.Performance),
		insertAll(stmt, "test_types", c.TestTypes),
	}
	for _, err := range inserts {
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertAll[T any](stmt *sql.Stmt, collection string, records []T) error {
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to encode %s record %d: %w", collection, i, err)
		}
		if _, err := stmt.Exec(collection, i, string(data)); err != nil {
			return fmt.Errorf("failed to insert %s record %d: %w", collection, i, err)
		}
	}
	return nil
}

// LoadCatalog reads every stored collection back into a Catalog.
func (db *DB) LoadCatalog() (*catalog.Catalog, error) {
	c := &catalog.Catalog{}
	loads := []error{
		loadAll(db.conn, "alerts", &c.Alerts),
		loadAll(db.conn, "system_alerts", &c.SystemAlerts),
		loadAll(db.conn, "users", &c.Users),
		loadAll(db.conn, "roles", &c.Roles),
		loadAll(db.conn, "hospitals", &c.Hospitals),
		loadAll(db.conn, "test_results", &c.TestResults),
		loadAll(db.conn, "standards", &c.Standards),
		loadAll(db.conn, "audits", &c.Audits),
		loadAll(db.conn, "violations", &c.Violations),
		loadAll(db.conn, "nodes", &c.Nodes),
		loadAll(db.conn, "monthly", &c.Monthly),
		loadAll(db.conn, "performance", &c.Performance),
		loadAll(db.conn, "test_types", &c.TestTypes),
	}
	for _, err := range loads {
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func loadAll[T any](conn *sql.DB, collection string, dst *[]T) error {
	rows, err := conn.Query(selectRecords, collection)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("failed to scan %s record: %w", collection, err)
		}
		var r T
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return fmt.Errorf("failed to decode %s record: %w", collection, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", collection, err)
	}
	*dst = out
	return nil
}

package db

import (
	"fmt"
	"time"

	"github.com/aidmqan/mqan-console/internal/models"
)

// HospitalActivity is the per-hospital event tally of the activity history.
type HospitalActivity struct {
	Hospital string `json:"hospital"`
	Events   int    `json:"events"`
	Warnings int    `json:"warnings"`
}

// InsertActivity appends feed events to the history. Events already stored
// are skipped.
func (db *DB) InsertActivity(events ...models.Activity) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertActivity)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range events {
		_, err := stmt.Exec(
			a.ID,
			a.Seq,
			a.Hospital,
			a.Node,
			a.Action,
			a.Batch,
			a.Status,
			a.Timestamp.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert activity %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecentActivity returns up to limit events, newest first.
func (db *DB) RecentActivity(limit int) ([]models.Activity, error) {
	rows, err := db.conn.Query(selectRecentActivity, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	events := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		var occurredAt string
		if err := rows.Scan(&a.ID, &a.Seq, &a.Hospital, &a.Node, &a.Action, &a.Batch, &a.Status, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Timestamp, _ = parseTimestamp(occurredAt)
		events = append(events, a)
	}
	return events, rows.Err()
}

// ActivityByHospital tallies the stored history per hospital, busiest first.
func (db *DB) ActivityByHospital() ([]HospitalActivity, error) {
	rows, err := db.conn.Query(selectActivityByHospital)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity stats: %w", err)
	}
	defer rows.Close()

	var stats []HospitalActivity
	for rows.Next() {
		var s HospitalActivity
		if err := rows.Scan(&s.Hospital, &s.Events, &s.Warnings); err != nil {
			return nil, fmt.Errorf("failed to scan activity stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ClearActivity removes the activity history.
func (db *DB) ClearActivity() error {
	if _, err := db.conn.Exec(deleteActivity); err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	return nil
}

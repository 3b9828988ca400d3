package db

import (
	"encoding/json"
	"fmt"

	"github.com/aidmqan/mqan-console/internal/models"
)

// GetSettings returns the stored settings layered over the defaults, so
// fields never saved keep their default value.
func (db *DB) GetSettings() (models.Settings, error) {
	return db.LoadSettings(models.DefaultSettings())
}

// LoadSettings layers the stored settings over base.
func (db *DB) LoadSettings(base models.Settings) (models.Settings, error) {
	s := base

	rows, err := db.conn.Query(selectSettings)
	if err != nil {
		return s, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	stored := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return s, fmt.Errorf("failed to scan setting: %w", err)
		}
		stored[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(stored) == 0 {
		return s, nil
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return s, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return base, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

// SaveSettings validates s and writes every field.
func (db *DB) SaveSettings(s models.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to split settings: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertSetting)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for key, value := range fields {
		if _, err := stmt.Exec(key, string(value)); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

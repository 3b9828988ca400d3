package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aidmqan/mqan-console/internal/models"
)

// SaveView stores spec under name for page, replacing any view of that name.
func (db *DB) SaveView(page, name string, spec models.FilterSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	if _, err := db.conn.Exec(upsertView, page, name, string(data)); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	return nil
}

// GetView returns a saved view, or ErrNotFound.
func (db *DB) GetView(page, name string) (models.SavedView, error) {
	v, err := scanView(db.conn.QueryRow(selectView, page, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SavedView{}, fmt.Errorf("view %s/%s: %w", page, name, ErrNotFound)
	}
	if err != nil {
		return models.SavedView{}, fmt.Errorf("failed to get view: %w", err)
	}
	return v, nil
}

// ListViews returns the saved views of one page, or of every page when page
// is empty, ordered by name.
func (db *DB) ListViews(page string) ([]models.SavedView, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if page == "" {
		rows, err = db.conn.Query(selectAllViews)
	} else {
		rows, err = db.conn.Query(selectViews, page)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query views: %w", err)
	}
	defer rows.Close()

	views := []models.SavedView{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan view: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// DeleteView removes a saved view. Deleting a missing view returns ErrNotFound.
func (db *DB) DeleteView(page, name string) error {
	res, err := db.conn.Exec(deleteView, page, name)
	if err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("view %s/%s: %w", page, name, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanView(s scanner) (models.SavedView, error) {
	var (
		v         models.SavedView
		spec      string
		updatedAt string
	)
	if err := s.Scan(&v.ID, &v.Page, &v.Name, &spec, &updatedAt); err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(spec), &v.Spec); err != nil {
		return v, fmt.Errorf("failed to decode view spec: %w", err)
	}
	v.UpdatedAt, _ = parseTimestamp(updatedAt)
	return v, nil
}

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// layoutStore persists the user's column layout across sessions. Only the
// layout lives here; order data never touches local storage.
type layoutStore struct {
	db   *sql.DB
	path string
}

func openLayoutStore() (*layoutStore, error) {
	dir := resolveConfigDir()
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return openLayoutStoreAt(filepath.Join(dir, "layout.sqlite"))
}

func openLayoutStoreAt(path string) (*layoutStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := migrateLayoutStore(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &layoutStore{db: db, path: path}, nil
}

func migrateLayoutStore(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS column_layout (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			width INTEGER NOT NULL
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("layout store migration failed: %w", err)
		}
	}
	return nil
}

func (s *layoutStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the persisted descriptors in position order. An empty result
// just means no layout was saved yet; the caller falls back to defaults.
func (s *layoutStore) Load() ([]columnDescriptor, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT id, position, width FROM column_layout ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var descriptors []columnDescriptor
	for rows.Next() {
		var d columnDescriptor
		if err := rows.Scan(&d.ID, &d.Position, &d.Width); err != nil {
			return nil, err
		}
		if d.ID == "" {
			continue
		}
		descriptors = append(descriptors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return descriptors, nil
}

// Save replaces the stored layout with the given descriptors atomically.
func (s *layoutStore) Save(descriptors []columnDescriptor) error {
	if s == nil || s.db == nil {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM column_layout`); err != nil {
		_ = tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO column_layout (id, position, width) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, d := range descriptors {
		if d.ID == "" {
			continue
		}
		if _, err := stmt.Exec(d.ID, d.Position, d.Width); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

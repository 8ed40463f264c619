// Package db persists corpus build runs in SQLite.
package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME,
	status      TEXT NOT NULL DEFAULT 'running'
);

CREATE TABLE IF NOT EXISTS collections (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id          TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	known_language  TEXT NOT NULL,
	target_language TEXT NOT NULL,
	pair_count      INTEGER NOT NULL DEFAULT 0,
	filename        TEXT NOT NULL,
	UNIQUE(run_id, known_language, target_language)
);

CREATE TABLE IF NOT EXISTS sentence_pairs (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	collection_id      INTEGER NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
	position           INTEGER NOT NULL,
	pair_id            TEXT NOT NULL,
	target_sentence_id INTEGER NOT NULL,
	known_text         TEXT NOT NULL,
	target_text        TEXT NOT NULL,
	complexity         REAL NOT NULL,
	UNIQUE(collection_id, pair_id)
);

CREATE INDEX IF NOT EXISTS idx_sentence_pairs_position ON sentence_pairs(collection_id, position);
`

// Open opens the SQLite database at path and applies migrations.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return conn, nil
}

// InitDB runs migrations on the given DB connection.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

package store

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order. The index of each entry plus one is its
// schema version, tracked through PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     TEXT    NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX idx_llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE TABLE certificates (
		id         TEXT    PRIMARY KEY,
		sequence   INTEGER NOT NULL UNIQUE,
		issued_at  TEXT    NOT NULL,
		name       TEXT    NOT NULL,
		score      REAL    NOT NULL,
		video_id   TEXT    NOT NULL DEFAULT '',
		title      TEXT    NOT NULL DEFAULT '',
		session_id TEXT    NOT NULL DEFAULT '',
		path       TEXT    NOT NULL DEFAULT ''
	)`,
}

// migrate brings the schema up to the latest version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("set schema version %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}
	return nil
}

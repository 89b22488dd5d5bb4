package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; the whole
// list re-runs on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS resources (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL CHECK(kind IN ('person','equipment','venue')),
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS availability_windows (
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		start_at    TEXT NOT NULL,
		end_at      TEXT NOT NULL,
		status      TEXT NOT NULL CHECK(status IN ('available','busy','unavailable')),
		PRIMARY KEY (resource_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS allocations (
		id               TEXT PRIMARY KEY,
		planning_item_id TEXT NOT NULL,
		resource_id      TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		start_at         TEXT NOT NULL,
		end_at           TEXT NOT NULL,
		title            TEXT NOT NULL,
		activity         TEXT NOT NULL
		                 CHECK(activity IN ('setup','rehearsal','performance','breakdown','transport','catering','other')),
		assigned_to      TEXT NOT NULL DEFAULT '[]',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allocations_resource ON allocations(resource_id)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_window ON allocations(start_at, end_at)`,

	// resource_id and allocation ids carry no foreign keys on purpose:
	// availability and assignee conflicts reference synthetic ids, and a
	// conflict's audit trail must survive allocation deletion.
	`CREATE TABLE IF NOT EXISTS conflicts (
		id              TEXT PRIMARY KEY,
		type            TEXT NOT NULL CHECK(type IN ('time','resource','venue','team')),
		severity        TEXT NOT NULL CHECK(severity IN ('low','medium','high','critical')),
		resource_id     TEXT NOT NULL,
		allocation_a_id TEXT NOT NULL,
		allocation_b_id TEXT NOT NULL,
		pair_key        TEXT NOT NULL,
		description     TEXT NOT NULL,
		status          TEXT NOT NULL CHECK(status IN ('active','resolved','ignored')),
		resolution_note TEXT NOT NULL DEFAULT '',
		detected_at     TEXT NOT NULL,
		resolved_at     TEXT
	)`,

	// One live conflict per pair; terminal records may pile up for audit.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_conflicts_active_pair
		ON conflicts(pair_key) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS idx_conflicts_status ON conflicts(status)`,
	`CREATE INDEX IF NOT EXISTS idx_conflicts_severity ON conflicts(severity)`,

	`CREATE TABLE IF NOT EXISTS suggestions (
		id          TEXT PRIMARY KEY,
		conflict_id TEXT NOT NULL REFERENCES conflicts(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL CHECK(kind IN ('reschedule','reassign','split','manual_review')),
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		impact      TEXT NOT NULL CHECK(impact IN ('low','medium','high')),
		sort_rank   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_conflict ON suggestions(conflict_id)`,
}

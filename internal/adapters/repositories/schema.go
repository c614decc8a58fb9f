package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the venue tables. The DDL is shared by sqlite and postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVenuesQuery := `
	CREATE TABLE IF NOT EXISTS venues (
		venue_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		layout TEXT NOT NULL
	);
	`

	createStallsQuery := `
	CREATE TABLE IF NOT EXISTS stalls (
		venue_id TEXT NOT NULL REFERENCES venues(venue_id) ON DELETE CASCADE,
		stall_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		origin_x INTEGER NOT NULL,
		origin_y INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		door_x INTEGER NOT NULL,
		door_y INTEGER NOT NULL,
		PRIMARY KEY (venue_id, stall_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stalls_venue_seq
	ON stalls(venue_id, seq);
	`

	statements := []string{
		createVenuesQuery,
		createStallsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

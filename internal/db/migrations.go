package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id            TEXT    PRIMARY KEY,
		position      INTEGER NOT NULL,
		title         TEXT    NOT NULL,
		description   TEXT    NOT NULL DEFAULT '',
		price         INTEGER NOT NULL CHECK (price > 0),
		address       TEXT    NOT NULL DEFAULT '',
		city          TEXT    NOT NULL DEFAULT '',
		state         TEXT    NOT NULL DEFAULT '',
		zip_code      TEXT    NOT NULL DEFAULT '',
		lat           REAL    NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lng           REAL    NOT NULL CHECK (lng BETWEEN -180 AND 180),
		bedrooms      INTEGER NOT NULL CHECK (bedrooms >= 0),
		bathrooms     REAL    NOT NULL CHECK (bathrooms >= 0),
		square_feet   INTEGER NOT NULL CHECK (square_feet > 0),
		year_built    INTEGER NOT NULL,
		property_type TEXT    NOT NULL CHECK (property_type IN ('house', 'apartment', 'condo', 'townhouse')),
		images        TEXT    NOT NULL,
		amenities     TEXT    NOT NULL DEFAULT '[]',
		status        TEXT    NOT NULL CHECK (status IN ('for-sale', 'for-rent', 'sold', 'pending')),
		imported_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS listings_position ON listings (position)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions (idempotent, checks if column exists first)
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"listings", "featured", "INTEGER NOT NULL DEFAULT 0"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) (err error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating columns: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

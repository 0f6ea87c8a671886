package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// schema is the base schema. Columns added after the first release are not
// listed here; they are brought in by assetColumns so that old database files
// pick them up too.
const schema = `
CREATE TABLE IF NOT EXISTS assets (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    serial_number TEXT NOT NULL,
    category      TEXT,
    location      TEXT,
    "user"        TEXT,
    status        TEXT DEFAULT 'In Use',
    created_at    TEXT
);

CREATE INDEX IF NOT EXISTS idx_assets_created_at ON assets(created_at);

CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'viewer' CHECK (role IN ('superadmin', 'editor', 'viewer')),
    created_at    TEXT NOT NULL
);
`

// assetColumns are optional asset columns, in the order they were introduced.
// Append only.
var assetColumns = []struct {
	name string
	typ  string
}{
	{"user_email", "TEXT"},
	{"loan_date", "TEXT"},
	{"warranty_date", "TEXT"},
	{"purchase_date", "TEXT"},
	{"image", "BLOB"},
	{"image_mime", "TEXT"},
}

// EnsureSchema creates missing tables and adds missing optional columns.
// It never drops or rewrites existing data and is safe to run on every start.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	existing, err := tableColumns(db, "assets")
	if err != nil {
		return err
	}

	for _, col := range assetColumns {
		if existing[col.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE assets ADD COLUMN %s %s", col.name, col.typ)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("adding column assets.%s: %w", col.name, err)
		}
		slog.Info("migrated database", "table", "assets", "added_column", col.name)
	}

	return nil
}

// tableColumns returns the set of column names of table.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("inspecting table %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// Package cache implements the snapshot cache: an optional on-disk
// store (adapted from the teacher's internal/db) that lets a repeat
// scan of an unchanged root redisplay instantly instead of re-walking
// the filesystem. It persists nothing the core engine itself needs —
// the engine remains a pure in-memory tree builder — this is purely an
// outer-layer acceleration the "scan"/"tui"/"insights" commands opt into.
package cache

import "database/sql"

const snapshotsTableDDL = `
CREATE TABLE IF NOT EXISTS snapshots (
    root_path   TEXT PRIMARY KEY,
    root_mtime  INTEGER NOT NULL,
    fingerprint TEXT NOT NULL,
    created_at  INTEGER NOT NULL,
    file_count  INTEGER NOT NULL,
    dir_count   INTEGER NOT NULL,
    error_count INTEGER NOT NULL
);
`

const nodesTableDDL = `
CREATE TABLE IF NOT EXISTS nodes (
    root_path   TEXT NOT NULL,
    path        TEXT NOT NULL,
    parent_path TEXT NOT NULL,
    name        TEXT NOT NULL,
    kind        INTEGER NOT NULL,
    size_bytes  INTEGER NOT NULL,
    disk_usage  INTEGER NOT NULL,
    PRIMARY KEY (root_path, path)
);
`

const insightsTableDDL = `
CREATE TABLE IF NOT EXISTS insights (
    root_path  TEXT NOT NULL,
    path       TEXT NOT NULL,
    name       TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    disk_usage INTEGER NOT NULL,
    kind       INTEGER NOT NULL,
    category   INTEGER NOT NULL,
    summary    TEXT NOT NULL
);
`

const categoryStatsTableDDL = `
CREATE TABLE IF NOT EXISTS category_stats (
    root_path  TEXT NOT NULL,
    category   INTEGER NOT NULL,
    count      INTEGER NOT NULL,
    size_bytes INTEGER NOT NULL,
    disk_usage INTEGER NOT NULL,
    PRIMARY KEY (root_path, category)
);
`

const nodesParentIndexDDL = `CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(root_path, parent_path, disk_usage DESC);`
const insightsRootIndexDDL = `CREATE INDEX IF NOT EXISTS idx_insights_root ON insights(root_path, disk_usage DESC);`

// InitSchema creates every table and index the cache needs.
func InitSchema(db *sql.DB) error {
	ddls := []string{
		snapshotsTableDDL,
		nodesTableDDL,
		insightsTableDDL,
		categoryStatsTableDDL,
		nodesParentIndexDDL,
		insightsRootIndexDDL,
	}
	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// ApplyWritePragmas configures sqlite for the batched-transaction write
// path (same choices as the teacher's ingester: WAL, relaxed sync,
// in-memory temp store).
func ApplyWritePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

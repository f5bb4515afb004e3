package cache

import (
	"database/sql"
	"fmt"
	"time"

	"diskscope/internal/insight"
	"diskscope/internal/scannode"

	_ "modernc.org/sqlite"
)

const batchSize = 2000

// Open opens (creating if needed) a snapshot cache database at path
// and ensures its schema exists.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if err := ApplyWritePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: apply pragmas: %w", err)
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return db, nil
}

// Save replaces any existing cached snapshot for rootPath with the
// given finalized tree, stats, and insight bundle, keyed by rootMtime
// and fingerprint so a later Lookup can detect staleness.
func Save(db *sql.DB, rootPath string, rootMtime time.Time, fingerprint string, snapshot *scannode.ScanSnapshot, bundle *insight.InsightBundle) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshots WHERE root_path = ?`, rootPath); err != nil {
		return fmt.Errorf("cache: clear snapshot row: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM nodes WHERE root_path = ?`, rootPath); err != nil {
		return fmt.Errorf("cache: clear nodes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM insights WHERE root_path = ?`, rootPath); err != nil {
		return fmt.Errorf("cache: clear insights: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM category_stats WHERE root_path = ?`, rootPath); err != nil {
		return fmt.Errorf("cache: clear category stats: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO snapshots (root_path, root_mtime, fingerprint, created_at, file_count, dir_count, error_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rootPath, rootMtime.Unix(), fingerprint, time.Now().Unix(),
		snapshot.Stats.Files(), snapshot.Stats.Directories(), snapshot.Stats.AccessErrors(),
	); err != nil {
		return fmt.Errorf("cache: insert snapshot row: %w", err)
	}

	if err := writeNodes(tx, rootPath, snapshot.Root); err != nil {
		return err
	}
	if err := writeInsights(tx, rootPath, bundle); err != nil {
		return err
	}

	return tx.Commit()
}

// nodeRow is a flattened tree row awaiting batched insertion.
type nodeRow struct {
	path, parentPath, name string
	kind                   scannode.Kind
	sizeBytes, diskUsage   int64
}

func writeNodes(tx *sql.Tx, rootPath string, root *scannode.ScanNode) error {
	stmt, err := tx.Prepare(
		`INSERT INTO nodes (root_path, path, parent_path, name, kind, size_bytes, disk_usage)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cache: prepare node insert: %w", err)
	}
	defer stmt.Close()

	var batch []nodeRow
	flush := func() error {
		for _, row := range batch {
			if _, err := stmt.Exec(rootPath, row.path, row.parentPath, row.name, row.kind, row.sizeBytes, row.diskUsage); err != nil {
				return fmt.Errorf("cache: insert node %q: %w", row.path, err)
			}
		}
		batch = batch[:0]
		return nil
	}

	type stackEntry struct {
		node       *scannode.ScanNode
		parentPath string
	}
	stack := []stackEntry{{node: root, parentPath: ""}}
	for len(stack) > 0 {
		n := len(stack) - 1
		e := stack[n]
		stack = stack[:n]

		batch = append(batch, nodeRow{
			path:       e.node.Path,
			parentPath: e.parentPath,
			name:       e.node.Name,
			kind:       e.node.Kind,
			sizeBytes:  e.node.SizeBytes,
			diskUsage:  e.node.DiskUsage,
		})
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}

		for _, c := range e.node.Children {
			stack = append(stack, stackEntry{node: c, parentPath: e.node.Path})
		}
	}
	return flush()
}

func writeInsights(tx *sql.Tx, rootPath string, bundle *insight.InsightBundle) error {
	if bundle == nil {
		return nil
	}

	stmt, err := tx.Prepare(
		`INSERT INTO insights (root_path, path, name, size_bytes, disk_usage, kind, category, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cache: prepare insight insert: %w", err)
	}
	defer stmt.Close()

	for _, ins := range bundle.Insights {
		if _, err := stmt.Exec(rootPath, ins.Path, ins.Name, ins.SizeBytes, ins.DiskUsage, ins.Kind, ins.Category, ins.Summary); err != nil {
			return fmt.Errorf("cache: insert insight %q: %w", ins.Path, err)
		}
	}

	statStmt, err := tx.Prepare(
		`INSERT INTO category_stats (root_path, category, count, size_bytes, disk_usage) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cache: prepare category stats insert: %w", err)
	}
	defer statStmt.Close()

	for category, stats := range bundle.ByCategory {
		if _, err := statStmt.Exec(rootPath, category, stats.Count, stats.SizeBytes, stats.DiskUsage); err != nil {
			return fmt.Errorf("cache: insert category stats %v: %w", category, err)
		}
	}
	return nil
}

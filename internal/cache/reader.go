package cache

import (
	"database/sql"
	"fmt"
	"time"

	"diskscope/internal/finalize"
	"diskscope/internal/insight"
	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"
)

// Lookup reports whether a fresh cached snapshot exists for rootPath:
// the stored root_mtime and fingerprint must match exactly, otherwise
// the cache is considered stale and the caller should rescan.
func Lookup(db *sql.DB, rootPath string, rootMtime time.Time, fingerprint string) (bool, error) {
	var storedMtime int64
	var storedFingerprint string
	err := db.QueryRow(
		`SELECT root_mtime, fingerprint FROM snapshots WHERE root_path = ?`, rootPath,
	).Scan(&storedMtime, &storedFingerprint)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: lookup %s: %w", rootPath, err)
	}
	return storedMtime == rootMtime.Unix() && storedFingerprint == fingerprint, nil
}

// Load reconstructs a ScanSnapshot and InsightBundle from a cached
// entry. Callers must have already confirmed freshness via Lookup.
func Load(db *sql.DB, rootPath string) (*scannode.ScanSnapshot, *insight.InsightBundle, error) {
	meta, err := loadMeta(db, rootPath)
	if err != nil {
		return nil, nil, err
	}

	root, err := loadTree(db, rootPath)
	if err != nil {
		return nil, nil, err
	}
	finalize.Finalize(root) // directory rows load with zero sizes; re-aggregate from files and re-sort

	bundle, err := loadInsights(db, rootPath)
	if err != nil {
		return nil, nil, err
	}

	return &scannode.ScanSnapshot{Root: root, Stats: meta}, bundle, nil
}

func loadMeta(db *sql.DB, rootPath string) (*scannode.ScanStats, error) {
	var files, dirs, errs int64
	err := db.QueryRow(
		`SELECT file_count, dir_count, error_count FROM snapshots WHERE root_path = ?`, rootPath,
	).Scan(&files, &dirs, &errs)
	if err != nil {
		return nil, fmt.Errorf("cache: load meta %s: %w", rootPath, err)
	}
	stats := &scannode.ScanStats{}
	stats.AddFiles(files)
	stats.AddDirectories(dirs)
	stats.AddAccessErrors(errs)
	return stats, nil
}

func loadTree(db *sql.DB, rootPath string) (*scannode.ScanNode, error) {
	rows, err := db.Query(
		`SELECT path, parent_path, name, kind, size_bytes, disk_usage FROM nodes WHERE root_path = ?`, rootPath)
	if err != nil {
		return nil, fmt.Errorf("cache: query nodes %s: %w", rootPath, err)
	}
	defer rows.Close()

	byPath := make(map[string]*scannode.ScanNode)
	parentOf := make(map[string]string)
	var root *scannode.ScanNode

	for rows.Next() {
		var path, parentPath, name string
		var kind scannode.Kind
		var sizeBytes, diskUsage int64
		if err := rows.Scan(&path, &parentPath, &name, &kind, &sizeBytes, &diskUsage); err != nil {
			return nil, fmt.Errorf("cache: scan node row: %w", err)
		}

		var node *scannode.ScanNode
		if kind == scannode.Directory {
			node = scannode.NewDirNode(path, name)
		} else {
			node = scannode.NewFileNode(path, name, sizeBytes, diskUsage)
		}
		byPath[path] = node
		parentOf[path] = parentPath
		if parentPath == "" {
			root = node
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache: iterate node rows: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("cache: no root row for %s", rootPath)
	}

	for path, node := range byPath {
		parentPath := parentOf[path]
		if parentPath == "" {
			continue
		}
		if parent, ok := byPath[parentPath]; ok {
			parent.AddChild(node)
		}
	}

	return root, nil
}

func loadInsights(db *sql.DB, rootPath string) (*insight.InsightBundle, error) {
	rows, err := db.Query(
		`SELECT path, name, size_bytes, disk_usage, kind, category, summary
		 FROM insights WHERE root_path = ? ORDER BY disk_usage DESC`, rootPath)
	if err != nil {
		return nil, fmt.Errorf("cache: query insights %s: %w", rootPath, err)
	}
	defer rows.Close()

	var insights []insight.Insight
	for rows.Next() {
		var ins insight.Insight
		if err := rows.Scan(&ins.Path, &ins.Name, &ins.SizeBytes, &ins.DiskUsage, &ins.Kind, &ins.Category, &ins.Summary); err != nil {
			return nil, fmt.Errorf("cache: scan insight row: %w", err)
		}
		insights = append(insights, ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache: iterate insight rows: %w", err)
	}

	statRows, err := db.Query(
		`SELECT category, count, size_bytes, disk_usage FROM category_stats WHERE root_path = ?`, rootPath)
	if err != nil {
		return nil, fmt.Errorf("cache: query category stats %s: %w", rootPath, err)
	}
	defer statRows.Close()

	byCategory := make(map[ruleset.Category]*insight.CategoryStats)
	for statRows.Next() {
		var category ruleset.Category
		stats := &insight.CategoryStats{}
		if err := statRows.Scan(&category, &stats.Count, &stats.SizeBytes, &stats.DiskUsage); err != nil {
			return nil, fmt.Errorf("cache: scan category stats row: %w", err)
		}
		byCategory[category] = stats
	}
	if err := statRows.Err(); err != nil {
		return nil, fmt.Errorf("cache: iterate category stats rows: %w", err)
	}

	return &insight.InsightBundle{Insights: insights, ByCategory: byCategory}, nil
}

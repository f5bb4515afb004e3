package cache

import (
	"database/sql"
	"testing"
	"time"

	"diskscope/internal/finalize"
	"diskscope/internal/insight"
	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func buildSnapshot() *scannode.ScanSnapshot {
	root := scannode.NewDirNode("/root", "root")
	root.AddChild(scannode.NewFileNode("/root/a.txt", "a.txt", 10, 512))
	root.AddChild(scannode.NewFileNode("/root/.ds_store", ".ds_store", 5, 512))
	finalize.Finalize(root)

	stats := &scannode.ScanStats{}
	stats.AddFiles(2)
	stats.AddDirectories(1)
	return &scannode.ScanSnapshot{Root: root, Stats: stats}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	snapshot := buildSnapshot()
	cs := ruleset.Compile([]ruleset.PatternRule{
		{Name: "ds-store", Pattern: "**/.DS_Store", Category: ruleset.Temp, ApplyTo: ruleset.ApplyFile},
	}, nil)
	bundle := insight.Generate(snapshot.Root, cs, 0)

	mtime := time.Unix(1700000000, 0)
	fingerprint := "abc123"
	if err := Save(db, "/root", mtime, fingerprint, snapshot, bundle); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh, err := Lookup(db, "/root", mtime, fingerprint)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !fresh {
		t.Fatal("expected cache to be fresh")
	}

	loadedSnapshot, loadedBundle, err := Load(db, "/root")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loadedSnapshot.Root.SizeBytes != snapshot.Root.SizeBytes {
		t.Fatalf("expected size %d, got %d", snapshot.Root.SizeBytes, loadedSnapshot.Root.SizeBytes)
	}
	if loadedSnapshot.Stats.Files() != 2 {
		t.Fatalf("expected 2 files in loaded stats, got %d", loadedSnapshot.Stats.Files())
	}
	if len(loadedBundle.Insights) != 1 || loadedBundle.Insights[0].Path != "/root/.ds_store" {
		t.Fatalf("unexpected loaded insights: %v", loadedBundle.Insights)
	}
}

func TestLookupStaleOnMtimeMismatch(t *testing.T) {
	db := openTestDB(t)
	snapshot := buildSnapshot()
	bundle := insight.Generate(snapshot.Root, ruleset.Compile(nil, nil), 0)

	mtime := time.Unix(1700000000, 0)
	if err := Save(db, "/root", mtime, "fp1", snapshot, bundle); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh, err := Lookup(db, "/root", mtime.Add(time.Hour), "fp1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if fresh {
		t.Fatal("expected stale cache after mtime change")
	}
}

func TestLookupStaleOnFingerprintMismatch(t *testing.T) {
	db := openTestDB(t)
	snapshot := buildSnapshot()
	bundle := insight.Generate(snapshot.Root, ruleset.Compile(nil, nil), 0)

	mtime := time.Unix(1700000000, 0)
	if err := Save(db, "/root", mtime, "fp1", snapshot, bundle); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh, err := Lookup(db, "/root", mtime, "fp2")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if fresh {
		t.Fatal("expected stale cache after fingerprint change")
	}
}

func TestLookupMissingReturnsFalseNoError(t *testing.T) {
	db := openTestDB(t)
	fresh, err := Lookup(db, "/does/not/exist", time.Now(), "fp")
	if err != nil {
		t.Fatalf("expected no error for missing root, got %v", err)
	}
	if fresh {
		t.Fatal("expected false for missing root")
	}
}

func TestFingerprintStableAndOrderIndependent(t *testing.T) {
	a := []ruleset.PatternRule{
		{Name: "b-rule", Pattern: "**/b", Category: ruleset.Cache, ApplyTo: ruleset.ApplyDir},
		{Name: "a-rule", Pattern: "**/a", Category: ruleset.Temp, ApplyTo: ruleset.ApplyFile},
	}
	b := []ruleset.PatternRule{a[1], a[0]}

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("expected fingerprint to be independent of input order")
	}
}

func TestFingerprintChangesWithRuleContent(t *testing.T) {
	a := []ruleset.PatternRule{{Name: "r", Pattern: "**/a", Category: ruleset.Temp, ApplyTo: ruleset.ApplyFile}}
	b := []ruleset.PatternRule{{Name: "r", Pattern: "**/b", Category: ruleset.Temp, ApplyTo: ruleset.ApplyFile}}

	if Fingerprint(a) == Fingerprint(b) {
		t.Fatal("expected fingerprint to change when a pattern changes")
	}
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"diskscope/internal/insight"
	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"
)

// keyMsg builds a tea.KeyMsg for one of the named special keys used in
// handleTreeKey/handleKey's switch statements.
func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

func buildSnapshot() *scannode.ScanSnapshot {
	root := scannode.NewDirNode("/root", "root")
	a := scannode.NewDirNode("/root/a", "a")
	b := scannode.NewFileNode("/root/b.txt", "b.txt", 100, 100)
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(scannode.NewFileNode("/root/a/inner.txt", "inner.txt", 50, 50))
	a.SizeBytes, a.DiskUsage = 50, 50
	a.SortChildren()
	root.SortChildren()

	stats := &scannode.ScanStats{}
	stats.AddFiles(2)
	stats.AddDirectories(2)
	return &scannode.ScanSnapshot{Root: root, Stats: stats}
}

func TestNewModelStartsAtRootChildren(t *testing.T) {
	snapshot := buildSnapshot()
	m := NewModel(snapshot, &insight.InsightBundle{})
	if m.current != snapshot.Root {
		t.Fatal("expected current to start at root")
	}
	if len(m.entries) != 2 {
		t.Fatalf("expected 2 top-level entries, got %d", len(m.entries))
	}
}

func TestTreeNavigationDownAndUp(t *testing.T) {
	snapshot := buildSnapshot()
	m := NewModel(snapshot, &insight.InsightBundle{})

	// b.txt (disk usage 100) sorts before "a" (50), so cursor 0 is b.txt
	// and cursor 1 is "a".
	m.cursor = 1
	m.handleKey(keyMsg("enter"))
	if m.current.Name != "a" {
		t.Fatalf("expected to descend into 'a', got %q", m.current.Name)
	}
	if len(m.trail) != 1 {
		t.Fatalf("expected trail depth 1, got %d", len(m.trail))
	}

	m.handleKey(keyMsg("backspace"))
	if m.current != snapshot.Root {
		t.Fatal("expected to return to root after going up")
	}
	if len(m.trail) != 0 {
		t.Fatalf("expected empty trail after returning to root, got %d", len(m.trail))
	}
}

func TestFilterNarrowsEntries(t *testing.T) {
	snapshot := buildSnapshot()
	m := NewModel(snapshot, &insight.InsightBundle{})

	m.filter = "a"
	m.applyFilter()
	for _, e := range m.entries {
		if e.Name != "a" {
			t.Fatalf("expected only entries containing 'a', got %q", e.Name)
		}
	}
}

func TestSortByNameAscending(t *testing.T) {
	snapshot := buildSnapshot()
	m := NewModel(snapshot, &insight.InsightBundle{})
	m.sort = SortByName
	m.setEntries(snapshot.Root.Children)

	if m.entries[0].Name != "a" || m.entries[1].Name != "b.txt" {
		t.Fatalf("expected name-ascending order, got %v", []string{m.entries[0].Name, m.entries[1].Name})
	}
}

func TestTabTogglesFocus(t *testing.T) {
	snapshot := buildSnapshot()
	m := NewModel(snapshot, &insight.InsightBundle{})
	if m.focus != paneTree {
		t.Fatal("expected to start on the tree pane")
	}
	m.handleKey(keyMsg("tab"))
	if m.focus != paneInsights {
		t.Fatal("expected tab to switch to the insights pane")
	}
}

func TestFilteredInsightsByCategory(t *testing.T) {
	bundle := &insight.InsightBundle{
		Insights: []insight.Insight{
			{Path: "/a", Category: ruleset.Temp},
			{Path: "/b", Category: ruleset.Cache},
		},
	}
	m := NewModel(buildSnapshot(), bundle)
	m.categoryIdx = int(ruleset.Cache)
	got := m.filteredInsights()
	if len(got) != 1 || got[0].Path != "/b" {
		t.Fatalf("expected only the Cache insight, got %v", got)
	}

	m.categoryIdx = -1
	if len(m.filteredInsights()) != 2 {
		t.Fatal("expected all insights when categoryIdx == -1")
	}
}

// Package tui implements the interactive tree/insight browser. Grounded
// on the teacher's internal/tui package: same bubbletea/lipgloss model
// split (model.go/update.go/view.go/styles.go) and key bindings, but
// navigating a finalized in-memory *scannode.ScanNode tree directly
// instead of issuing a SQL query per keypress — the tree is already
// fully aggregated and sorted, so there is nothing left to query.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"diskscope/internal/insight"
	"diskscope/internal/scannode"
)

// SortColumn represents the current sort field for the entry list.
type SortColumn int

const (
	SortByDisk SortColumn = iota
	SortByApparent
	SortByName
)

func (s SortColumn) String() string {
	switch s {
	case SortByApparent:
		return "apparent"
	case SortByName:
		return "name"
	default:
		return "disk"
	}
}

// pane selects which half of the screen has focus.
type pane int

const (
	paneTree pane = iota
	paneInsights
)

// Model holds the TUI state.
type Model struct {
	root    *scannode.ScanNode
	current *scannode.ScanNode
	// trail holds the ancestor chain from root to current (exclusive),
	// used to implement "go up" without parent pointers on ScanNode.
	trail []*scannode.ScanNode

	stats  *scannode.ScanStats
	bundle *insight.InsightBundle

	allEntries []*scannode.ScanNode
	entries    []*scannode.ScanNode
	cursor     int
	sort       SortColumn

	focus         pane
	insightCursor int
	categoryIdx   int // -1 = all categories

	width, height int

	filter       string
	filterActive bool
}

// NewModel creates a TUI model over an already-finalized snapshot and
// its insight bundle.
func NewModel(snapshot *scannode.ScanSnapshot, bundle *insight.InsightBundle) *Model {
	m := &Model{
		root:        snapshot.Root,
		current:     snapshot.Root,
		stats:       snapshot.Stats,
		bundle:      bundle,
		sort:        SortByDisk,
		categoryIdx: -1,
	}
	m.setEntries(snapshot.Root.Children)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	return "↑/↓ move | →/Enter: open | ←: up | s/a/n: sort | tab: insights | /: filter | q: quit"
}

func (m *Model) setEntries(children []*scannode.ScanNode) {
	m.allEntries = children
	m.applySort()
	m.applyFilter()
}

func (m *Model) applySort() {
	if m.sort == SortByDisk {
		return // Children are already disk-usage-descending post-finalization.
	}
	sorted := make([]*scannode.ScanNode, len(m.allEntries))
	copy(sorted, m.allEntries)
	switch m.sort {
	case SortByApparent:
		sortNodes(sorted, func(a, b *scannode.ScanNode) bool { return a.SizeBytes > b.SizeBytes })
	case SortByName:
		sortNodes(sorted, func(a, b *scannode.ScanNode) bool { return a.Name < b.Name })
	}
	m.allEntries = sorted
}

func sortNodes(nodes []*scannode.ScanNode, less func(a, b *scannode.ScanNode) bool) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && less(nodes[j], nodes[j-1]); j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
}

func (m *Model) applyFilter() {
	if m.filter == "" {
		m.entries = m.allEntries
	} else {
		filtered := make([]*scannode.ScanNode, 0, len(m.allEntries))
		needle := strings.ToLower(m.filter)
		for _, n := range m.allEntries {
			if strings.Contains(strings.ToLower(n.Name), needle) {
				filtered = append(filtered, n)
			}
		}
		m.entries = filtered
	}
	m.cursor = 0
}

// filteredInsights returns the bundle's insights restricted to the
// currently selected category (categoryIdx == -1 means all).
func (m *Model) filteredInsights() []insight.Insight {
	if m.bundle == nil {
		return nil
	}
	if m.categoryIdx < 0 {
		return m.bundle.Insights
	}
	var out []insight.Insight
	for _, ins := range m.bundle.Insights {
		if int(ins.Category) == m.categoryIdx {
			out = append(out, ins)
		}
	}
	return out
}

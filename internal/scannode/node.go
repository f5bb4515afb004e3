// Package scannode defines the in-memory tree produced by a scan: one
// ScanNode per filesystem entry, aggregated sizes, and the process-wide
// counters collected alongside it.
package scannode

import (
	"cmp"
	"slices"
	"sync/atomic"
)

// Kind distinguishes a file from a directory entry.
type Kind uint8

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "dir"
	}
	return "file"
}

// emptyChildren is the single immutable children slice shared by every
// FILE node in the process, avoiding a per-leaf allocation on trees with
// millions of files.
var emptyChildren = []*ScanNode{}

// ScanNode is one filesystem entry visited during a scan.
//
// A FILE node's Children is always emptyChildren. A DIRECTORY node's
// Children is appended to exclusively by the worker that dequeued it
// (see internal/walker); after that directory has been fully processed
// the node is mutated only by Finalize (internal/finalize), which sets
// SizeBytes/DiskUsage and sorts Children. After finalization the tree is
// immutable and safe to read from any goroutine without synchronization.
type ScanNode struct {
	Path string
	Name string
	Kind Kind

	// SizeBytes is the logical size: st_size for files, sum of children
	// for directories (post-finalization).
	SizeBytes int64
	// DiskUsage is allocated blocks * 512 for files, sum of children for
	// directories (post-finalization).
	DiskUsage int64

	Children []*ScanNode
}

// NewFileNode creates a leaf node with the shared empty-children sentinel.
func NewFileNode(path, name string, size, diskUsage int64) *ScanNode {
	return &ScanNode{
		Path:      path,
		Name:      name,
		Kind:      File,
		SizeBytes: size,
		DiskUsage: diskUsage,
		Children:  emptyChildren,
	}
}

// NewDirNode creates a directory node with zeroed aggregates; its
// Children are appended to by the walker and populated by Finalize.
func NewDirNode(path, name string) *ScanNode {
	return &ScanNode{
		Path: path,
		Name: name,
		Kind: Directory,
	}
}

// AddChild appends a child to a directory node. Callers must be the
// single worker owning this node (see package doc); no locking is done.
func (n *ScanNode) AddChild(child *ScanNode) {
	n.Children = append(n.Children, child)
}

// IsDir reports whether n is a directory node.
func (n *ScanNode) IsDir() bool {
	return n.Kind == Directory
}

// SortChildren orders Children by DiskUsage descending, breaking ties by
// Name ascending (spec's Open Question on tie-break, resolved here).
func (n *ScanNode) SortChildren() {
	slices.SortFunc(n.Children, func(a, b *ScanNode) int {
		if c := cmp.Compare(b.DiskUsage, a.DiskUsage); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// ScanStats holds the global counters updated during a scan. Workers
// batch-flush into it (see internal/walker); reads are safe once the
// walk has joined.
type ScanStats struct {
	files        atomic.Int64
	directories  atomic.Int64
	accessErrors atomic.Int64
}

// AddFiles atomically adds delta to the file counter.
func (s *ScanStats) AddFiles(delta int64) { s.files.Add(delta) }

// AddDirectories atomically adds delta to the directory counter.
func (s *ScanStats) AddDirectories(delta int64) { s.directories.Add(delta) }

// AddAccessErrors atomically adds delta to the access-error counter.
func (s *ScanStats) AddAccessErrors(delta int64) { s.accessErrors.Add(delta) }

// Files returns the current file count.
func (s *ScanStats) Files() int64 { return s.files.Load() }

// Directories returns the current directory count.
func (s *ScanStats) Directories() int64 { return s.directories.Load() }

// AccessErrors returns the current access-error count.
func (s *ScanStats) AccessErrors() int64 { return s.accessErrors.Load() }

// ScanSnapshot is the result of a scan: the root node plus the counters
// collected while building it.
type ScanSnapshot struct {
	Root  *ScanNode
	Stats *ScanStats
}

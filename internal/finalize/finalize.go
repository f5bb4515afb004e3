// Package finalize implements the tree finalizer from spec §4.4: a
// two-pass iterative post-order aggregation of sizes, with children
// sorted by disk usage descending. No recursion, so arbitrarily deep
// trees are supported.
//
// Grounded on the teacher's internal/rollup/builder.go (bottom-up,
// deepest-first aggregation) and internal/rollup/stream.go (parent/child
// accumulation shape), reimplemented over the in-memory ScanNode tree
// instead of SQL rows, plus mobanhawi/aster's node.go sort helpers.
package finalize

import "diskscope/internal/scannode"

// Finalize aggregates SizeBytes and DiskUsage bottom-up from root and
// sorts every directory's children by DiskUsage descending (ties broken
// by Name ascending). It is idempotent: running it again on an
// already-finalized tree recomputes the same totals.
func Finalize(root *scannode.ScanNode) {
	if root == nil || !root.IsDir() {
		return
	}

	// Pass 1: iterative pre-order collection of directory nodes.
	dirs := collectDirsPreOrder(root)

	// Pass 2: process in reverse (post-order) so every child directory
	// is aggregated before its parent is visited.
	for i := len(dirs) - 1; i >= 0; i-- {
		d := dirs[i]
		var size, disk int64
		for _, c := range d.Children {
			size += c.SizeBytes
			disk += c.DiskUsage
		}
		d.SizeBytes = size
		d.DiskUsage = disk
		d.SortChildren()
	}
}

func collectDirsPreOrder(root *scannode.ScanNode) []*scannode.ScanNode {
	var dirs []*scannode.ScanNode
	stack := []*scannode.ScanNode{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.IsDir() {
			continue
		}
		dirs = append(dirs, n)
		for _, c := range n.Children {
			if c.IsDir() {
				stack = append(stack, c)
			}
		}
	}
	return dirs
}

package insight

// insightHeap is a min-heap over Insight.DiskUsage, used to keep the
// top-K entries per category (spec §4.8's "push only if disk_usage >
// heap.min, then evict the minimum").
type insightHeap []Insight

func (h insightHeap) Len() int            { return len(h) }
func (h insightHeap) Less(i, j int) bool  { return h[i].DiskUsage < h[j].DiskUsage }
func (h insightHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *insightHeap) Push(x any)         { *h = append(*h, x.(Insight)) }
func (h *insightHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

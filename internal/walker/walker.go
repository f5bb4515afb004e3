// Package walker implements the threaded walker from spec §4.3: a
// fixed-size worker pool that drains a work queue of directories,
// invokes the platform scan_one primitive, builds the in-memory
// ScanNode tree, and reports progress.
//
// Grounded on the teacher's internal/scan/worker.go and scanner.go
// (per-worker local counters flushed under a shared mutex once per
// directory, [W%d]-tagged verbose tracing, stack-on-full-queue
// fallback), adapted from "stream rows to SQLite" to "append ScanNode
// children" per spec §3/§4.3.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"diskscope/internal/platform"
	"diskscope/internal/scannode"
	"diskscope/internal/scanqueue"
)

type dirTask struct {
	node  *scannode.ScanNode
	depth int
}

// Walk scans the tree rooted at root and returns the unfinalized
// ScanSnapshot (callers run internal/finalize.Finalize on the result).
// It returns ErrRootNotFound or ErrRootNotDirectory per spec §6.1. If
// opts.Cancel reports true after any directory is processed, it returns
// ErrCancelled together with the partial snapshot.
func Walk(root string, opts *Options) (*scannode.ScanSnapshot, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	absRoot, err := filepath.Abs(expandHome(root))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}
	info, err := os.Lstat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, absRoot)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, absRoot)
	}

	rootNode := scannode.NewDirNode(absRoot, filepath.Base(absRoot))
	stats := &scannode.ScanStats{}
	stats.AddDirectories(1)

	w := &walkState{
		opts:  opts,
		queue: scanqueue.New(),
		stats: stats,
	}

	w.queue.Put(dirTask{node: rootNode, depth: 0})

	var wg sync.WaitGroup
	wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go func(id int) {
			defer wg.Done()
			w.runWorker(id)
		}(i)
	}

	w.queue.Join()
	wg.Wait()

	if w.cancelled.Load() {
		return &scannode.ScanSnapshot{Root: rootNode, Stats: stats}, ErrCancelled
	}
	return &scannode.ScanSnapshot{Root: rootNode, Stats: stats}, nil
}

type walkState struct {
	opts      *Options
	queue     *scanqueue.Queue
	stats     *scannode.ScanStats
	cancelled atomic.Bool

	progressMu    sync.Mutex
	entriesSeen   int64
	lastProgress  int64
}

const progressEvery = 100

func (w *walkState) runWorker(id int) {
	for {
		item, ok := w.queue.Get()
		if !ok {
			return
		}
		task := item.(dirTask)
		w.processDirectory(id, task)
		w.queue.TaskDone()

		if w.opts.Cancel != nil && w.opts.Cancel() {
			w.cancelled.Store(true)
		}
		if w.cancelled.Load() {
			w.drainWithoutWork()
			return
		}
	}
}

// drainWithoutWork empties the queue, marking every remaining task done
// without doing further I/O, so Join returns promptly after cancellation
// (spec §4.3.f / §5 Cancellation).
func (w *walkState) drainWithoutWork() {
	for {
		_, ok := w.queue.Get()
		if !ok {
			return
		}
		w.queue.TaskDone()
	}
}

func (w *walkState) processDirectory(id int, task dirTask) {
	if w.opts.Verbose {
		fmt.Fprintf(os.Stderr, "[W%d] READDIR-START depth=%d path=%s\n", id, task.depth, task.node.Path)
	}

	result := platform.ScanOne(task.node.Path)

	var localFiles, localDirs, localErrors int64
	localErrors += int64(result.ErrorCount)

	for _, e := range result.Entries {
		childPath := joinPath(task.node.Path, e.Name)
		if w.opts.shouldExclude(childPath) {
			continue
		}

		if e.Kind == platform.EntryDir {
			childNode := scannode.NewDirNode(childPath, e.Name)
			task.node.AddChild(childNode)
			localDirs++

			if w.opts.allowDepth(task.depth + 1) {
				w.queue.Put(dirTask{node: childNode, depth: task.depth + 1})
			}
		} else {
			childNode := scannode.NewFileNode(childPath, e.Name, e.SizeBytes, e.DiskUsage)
			task.node.AddChild(childNode)
			localFiles++
		}
	}

	// Flush per-worker counters once per directory, per spec §4.3.e.
	w.stats.AddFiles(localFiles)
	w.stats.AddDirectories(localDirs)
	w.stats.AddAccessErrors(localErrors)

	w.reportProgress(task.node.Path, localFiles+localDirs)

	if w.opts.Verbose {
		fmt.Fprintf(os.Stderr, "[W%d] READDIR-DONE depth=%d entries=%d errors=%d path=%s\n",
			id, task.depth, len(result.Entries), result.ErrorCount, task.node.Path)
	}
}

func (w *walkState) reportProgress(path string, delta int64) {
	if w.opts.Progress == nil {
		return
	}
	w.progressMu.Lock()
	w.entriesSeen += delta
	due := w.entriesSeen-w.lastProgress >= progressEvery
	if due {
		w.lastProgress = w.entriesSeen
	}
	files, dirs := w.stats.Files(), w.stats.Directories()
	w.progressMu.Unlock()

	if due {
		w.opts.Progress(path, files, dirs)
	}
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				return home
			}
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

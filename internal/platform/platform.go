// Package platform implements the scan_one primitive from spec §4.1: one
// call per directory that returns every entry's name, type, and size
// with the fewest possible syscalls, releasing the Go runtime's own
// scheduling to other goroutines across the I/O (Go has no GIL to drop
// explicitly, but the same OS thread can be handed to another goroutine
// while this one blocks in the kernel).
package platform

// EntryKind mirrors scannode.Kind without importing it, keeping this
// package free of a dependency on the tree model.
type EntryKind uint8

const (
	EntryFile EntryKind = iota
	EntryDir
)

// Entry is one raw directory entry as returned by a scan_one
// implementation, before a ScanNode is built from it.
type Entry struct {
	Name      string
	Kind      EntryKind
	SizeBytes int64
	DiskUsage int64
}

// Result is what scan_one returns for one directory: its entries and a
// count of errors encountered while producing them (directory-open
// failure, or a mid-stream stat/syscall failure).
type Result struct {
	Entries    []Entry
	ErrorCount int
}

// ScanOne lists the contents of dirPath, skipping "." and "..". Symlinks
// are never followed: an entry's Kind reflects the link's own type, so a
// symlink to a directory is reported as EntryFile with size 0 (spec §4.1,
// §9 Open Question resolved: symlinked directories are not followed).
//
// Implementations live in platform_darwin.go (bulk getattrlist), and
// platform_unix.go (readdir+lstat, used on all other POSIX targets this
// module supports).
func ScanOne(dirPath string) Result {
	return scanOne(dirPath)
}

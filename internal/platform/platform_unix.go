//go:build unix && !darwin

package platform

import (
	"os"
	"syscall"
)

// scanOne is the Readdir (POSIX) implementation of scan_one: opendir +
// readdir, lstat'ing each entry to learn its size. Symlinks are reported
// using their own lstat info (never followed), per spec §4.1.
func scanOne(dirPath string) Result {
	f, err := os.Open(dirPath)
	if err != nil {
		return Result{ErrorCount: 1}
	}
	defer f.Close()

	var res Result
	const batchSize = 1024

	for {
		names, err := f.Readdirnames(batchSize)
		for _, name := range names {
			if name == "." || name == ".." {
				continue
			}
			entry, ok := lstatEntry(dirPath, name)
			if !ok {
				res.ErrorCount++
				continue
			}
			res.Entries = append(res.Entries, entry)
		}
		if err != nil {
			break
		}
	}
	return res
}

func lstatEntry(dirPath, name string) (Entry, bool) {
	full := dirPath + "/" + name
	info, err := os.Lstat(full)
	if err != nil {
		return Entry{}, false
	}

	e := Entry{Name: name}
	mode := info.Mode()
	switch {
	case mode.IsDir():
		e.Kind = EntryDir
		e.SizeBytes = 0
		e.DiskUsage = 0
	default:
		// Regular files, symlinks, and other special files are all
		// reported as FILE; a symlink to a directory is not followed and
		// is therefore never classified as EntryDir.
		e.Kind = EntryFile
		e.SizeBytes = info.Size()
		if stat, ok := info.Sys().(*syscall.Stat_t); ok {
			e.DiskUsage = int64(stat.Blocks) * 512
		} else {
			e.DiskUsage = e.SizeBytes
		}
	}
	return e, true
}

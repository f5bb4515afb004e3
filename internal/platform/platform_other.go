//go:build !unix && !darwin

package platform

import "os"

// scanOne is the Pure fallback implementation of scan_one, used on
// targets without a cheaper bulk or readdir+lstat path. Equivalent
// semantics via the standard library's directory iterator with its
// already-cached os.DirEntry.Info() stat data (spec §4.1).
func scanOne(dirPath string) Result {
	f, err := os.Open(dirPath)
	if err != nil {
		return Result{ErrorCount: 1}
	}
	defer f.Close()

	var res Result
	const batchSize = 1024

	for {
		entries, err := f.ReadDir(batchSize)
		for _, de := range entries {
			if de.Name() == "." || de.Name() == ".." {
				continue
			}
			info, ierr := de.Info()
			if ierr != nil {
				res.ErrorCount++
				continue
			}
			e := Entry{Name: de.Name()}
			if info.IsDir() {
				e.Kind = EntryDir
			} else {
				e.Kind = EntryFile
				e.SizeBytes = info.Size()
				e.DiskUsage = info.Size()
			}
			res.Entries = append(res.Entries, e)
		}
		if err != nil {
			break
		}
	}
	return res
}

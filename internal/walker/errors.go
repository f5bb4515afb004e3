package walker

import "errors"

// Sentinel errors matching spec §7's error taxonomy for Walk's fatal
// conditions. ErrCancelled is returned, alongside the partial snapshot,
// when the cancel predicate fires; directory- and entry-level failures never surface as
// errors — they only increment ScanStats.AccessErrors (spec §7).
var (
	ErrRootNotFound     = errors.New("walker: root not found")
	ErrRootNotDirectory = errors.New("walker: root is not a directory")
	ErrCancelled        = errors.New("walker: scan cancelled")
)

package walker

import "regexp"

// ProgressFunc is the progress sink contract from spec §6.2: invoked
// with the current path and running file/directory counts, not more
// than roughly once per 100 processed entries. Implementations must be
// non-blocking or cheap; Walk does not rate-limit further.
type ProgressFunc func(currentPath string, filesSeen, directoriesSeen int64)

// CancelFunc is polled by each worker after every directory it finishes. Returning
// true causes in-flight workers to drain their current directory and
// exit without enqueuing further work.
type CancelFunc func() bool

// Options configures a Walk, grounded on the teacher's ScanOptions
// builder pattern (internal/scan/options.go) generalized to the
// in-memory tree walk spec §4.3 describes.
type Options struct {
	// Workers is the number of concurrent directory processors. Must be
	// >= 1.
	Workers int

	// MaxDepth bounds recursion; nil means unlimited.
	MaxDepth *int

	// ExcludePatterns are regular expressions for paths to skip
	// entirely (an ambient convenience beyond spec.md, layered above
	// the classification ruleset — see SPEC_FULL.md §1.1).
	ExcludePatterns []*regexp.Regexp

	// Verbose enables the teacher's [W%d]-tagged stderr tracing.
	Verbose bool

	Progress ProgressFunc
	Cancel   CancelFunc
}

// DefaultOptions returns sensible defaults: 4 workers, unlimited depth.
func DefaultOptions() *Options {
	return &Options{Workers: 4}
}

// WithWorkers sets the worker count.
func (o *Options) WithWorkers(n int) *Options {
	o.Workers = n
	return o
}

// WithMaxDepth bounds recursion to depth (0 == root only).
func (o *Options) WithMaxDepth(depth int) *Options {
	o.MaxDepth = &depth
	return o
}

// WithVerbose toggles [W%d]-tagged stderr tracing.
func (o *Options) WithVerbose(v bool) *Options {
	o.Verbose = v
	return o
}

// AddExcludePattern compiles and appends a path-exclusion regex.
func (o *Options) AddExcludePattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	o.ExcludePatterns = append(o.ExcludePatterns, re)
	return nil
}

func (o *Options) shouldExclude(path string) bool {
	for _, re := range o.ExcludePatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func (o *Options) allowDepth(depth int) bool {
	return o.MaxDepth == nil || depth <= *o.MaxDepth
}

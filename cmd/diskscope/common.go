package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"diskscope/internal/cache"
	"diskscope/internal/finalize"
	"diskscope/internal/insight"
	"diskscope/internal/pathutil"
	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"
	"diskscope/internal/walker"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// buildRuleSet assembles the compiled rule set from defaults, an
// optional --rules override file, and --mark category=path pairs.
func buildRuleSet() (*ruleset.CompiledRuleSet, []ruleset.PatternRule, error) {
	rules := ruleset.DefaultRules()

	if optRulesFile != "" {
		extra, err := ruleset.LoadRulesFile(optRulesFile)
		if err != nil {
			return nil, nil, err
		}
		rules = append(rules, extra...)
	}

	additional := make(map[ruleset.Category][]string)
	for _, mark := range optMark {
		parts := strings.SplitN(mark, "=", 2)
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("invalid --mark %q (expected category=path)", mark)
		}
		category, ok := ruleset.ParseCategory(parts[0])
		if !ok {
			return nil, nil, fmt.Errorf("invalid --mark category %q", parts[0])
		}
		additional[category] = append(additional[category], parts[1])
	}

	return ruleset.Compile(rules, additional), rules, nil
}

// runPipeline resolves root, consults the snapshot cache if configured,
// and otherwise walks + finalizes + classifies it. showProgress drives a
// spinner on stderr; set false for commands (like the TUI) that own the
// terminal themselves.
func runPipeline(rootArg string, showProgress bool) (*scannode.ScanSnapshot, *insight.InsightBundle, error) {
	root, err := filepath.Abs(rootArg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve root path: %w", err)
	}
	root = pathutil.Normalize(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("stat root: %w", err)
	}

	compiled, rules, err := buildRuleSet()
	if err != nil {
		return nil, nil, err
	}

	var cacheDB *sql.DB
	if optCachePath != "" {
		cacheDB, err = cache.Open(optCachePath)
		if err != nil {
			return nil, nil, err
		}
		defer cacheDB.Close()

		fingerprint := cache.Fingerprint(rules)
		fresh, err := cache.Lookup(cacheDB, root, info.ModTime(), fingerprint)
		if err != nil {
			return nil, nil, err
		}
		if fresh {
			snapshot, bundle, err := cache.Load(cacheDB, root)
			if err != nil {
				return nil, nil, err
			}
			return snapshot, bundle, nil
		}
	}

	opts := walker.DefaultOptions().WithWorkers(optWorkers).WithVerbose(optVerbose)
	if optMaxDepth >= 0 {
		opts = opts.WithMaxDepth(optMaxDepth)
	}
	for _, pattern := range optExclude {
		if err := opts.AddExcludePattern(pattern); err != nil {
			return nil, nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nCanceling...")
		cancel()
	}()
	opts.Cancel = func() bool { return ctx.Err() != nil }

	var lastFiles, lastDirs int64
	if showProgress {
		opts.Progress = func(_ string, files, dirs int64) {
			atomic.StoreInt64(&lastFiles, files)
			atomic.StoreInt64(&lastDirs, dirs)
		}
	}

	progressDone := make(chan struct{})
	startTime := time.Now()
	if showProgress && isTerminal() {
		go runSpinner(progressDone, startTime, &lastFiles, &lastDirs)
	}

	snapshot, err := walker.Walk(root, opts)
	close(progressDone)
	if showProgress && isTerminal() {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("walk: %w", err)
	}

	finalize.Finalize(snapshot.Root)

	maxInsights := optMaxInsights
	if maxInsights <= 0 {
		maxInsights = insight.DefaultMaxInsightsPerCategory
	}
	bundle := insight.Generate(snapshot.Root, compiled, maxInsights)

	if cacheDB != nil {
		fingerprint := cache.Fingerprint(rules)
		if err := cache.Save(cacheDB, root, info.ModTime(), fingerprint, snapshot, bundle); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write snapshot cache: %v\n", err)
		}
	}

	return snapshot, bundle, nil
}

func runSpinner(done <-chan struct{}, start time.Time, files, dirs *int64) {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	var idx int
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			f := atomic.LoadInt64(files)
			d := atomic.LoadInt64(dirs)
			elapsed := time.Since(start).Round(time.Millisecond)
			spinner := spinnerFrames[idx%len(spinnerFrames)]
			idx++
			fmt.Fprintf(os.Stderr, "\r\033[K%s Scanning... %d files | %d dirs | %s", spinner, f, d, elapsed)
		}
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/wavecount-dev/wavecount/ledger"
	"github.com/wavecount-dev/wavecount/loader"
	"github.com/wavecount-dev/wavecount/output"
	"github.com/wavecount-dev/wavecount/telemetry"
)

type CheckCmd struct {
	File  FileOrStdin `help:"Export filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Watch bool        `help:"Re-run the check whenever the file changes."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.Watch {
		if cmd.File.IsStdin() {
			return fmt.Errorf("--watch requires a file, not stdin")
		}
		return cmd.watch(ctx, globals)
	}

	if err := cmd.runOnce(ctx, globals); err != nil {
		return NewCommandError(1)
	}
	return nil
}

// runOnce executes the full pipeline and reports the outcome. All
// error output has been printed by the time it returns.
func (cmd *CheckCmd) runOnce(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewPhaseCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	merged, result, err := runPipeline(runCtx, &cmd.File)
	if err != nil {
		var source []byte
		if result != nil {
			source = result.Source
		} else {
			source = cmd.File.Contents
		}
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "check failed")
		return err
	}

	balanced := 0
	for _, txn := range merged.Transactions {
		if len(txn.Postings) > 1 {
			balanced++
		}
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d accounts, %d transactions (%d merged)",
		len(merged.Accounts), len(merged.Transactions), balanced))
	return nil
}

// runPipeline loads, parses, assembles, reconciles, sorts and checks
// one export. The loader result is returned even on failure so the
// caller can render source excerpts.
func runPipeline(runCtx context.Context, file *FileOrStdin) (*ledger.Ledger, *loader.Result, error) {
	ldr := loader.New()

	var result *loader.Result
	var err error
	if file.IsStdin() {
		result, err = ldr.LoadBytes(runCtx, file.Filename, file.Contents)
	} else {
		result, err = ldr.Load(runCtx, file.AbsoluteFilename())
	}
	if err != nil {
		return nil, result, err
	}

	collector := telemetry.FromContext(runCtx)

	done := collector.Start("assemble")
	assembled, err := ledger.Assemble(result.Document)
	done()
	if err != nil {
		return nil, result, err
	}

	done = collector.Start("reconcile")
	merged := assembled.Reconcile()
	merged.SortByDate()
	done()

	done = collector.Start("check")
	err = merged.CheckBalanced()
	done()
	if err != nil {
		return nil, result, err
	}

	return merged, result, nil
}

// watch re-runs the check on every change to the export file. Events
// are debounced because editors and exports often write in several
// steps; watching the directory survives atomic replaces.
func (cmd *CheckCmd) watch(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := cmd.File.AbsoluteFilename()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	printInfof(ctx.Stdout, "watching %s", cmd.File.Filename)
	_ = cmd.runOnce(ctx, globals)

	const debounceDelay = 100 * time.Millisecond
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				printInfof(ctx.Stdout, "%s changed", cmd.File.Filename)
				_ = cmd.runOnce(ctx, globals)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("file watcher error: %v", err)
		}
	}
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/pkg/fsutil"
	"github.com/yaklabco/mdblocks/pkg/markdown"
	"github.com/yaklabco/mdblocks/pkg/textdiff"
)

// Runner formats files with a markdown.Converter.
type Runner struct {
	// Converter round-trips each file's content.
	Converter *markdown.Converter
}

// New creates a new Runner. A nil converter uses markdown.New().
func New(conv *markdown.Converter) *Runner {
	if conv == nil {
		conv = markdown.New()
	}
	return &Runner{Converter: conv}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns one FileOutcome per discovered file, ordered by path, plus
// aggregate stats. Per-file failures are recorded on the outcome; the
// returned error is reserved for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldCheck, opts.Mode == ModeCheck,
		logging.FieldDryRun, opts.Mode == ModeDryRun,
	)

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts, logger)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and replay in order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
	logger *log.Logger,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path, opts)
		if outcome.Error != nil {
			logger.Debug("format failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
		} else {
			logger.Debug("formatted", logging.FieldPath, path,
				logging.FieldBlocks, outcome.Blocks, "changed", outcome.Changed, "written", outcome.Written)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile formats a single file according to opts.Mode.
//
// In write mode a changed file is only replaced if it still matches what was
// read; a backup of the original is written first when backups are active.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	original, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	root, err := r.Converter.Deserialize(string(original))
	if err != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", path, err)
		return outcome
	}
	outcome.Blocks = root.ChildCount()

	formatted, err := r.Converter.Serialize(root)
	if err != nil {
		outcome.Error = fmt.Errorf("format %s: %w", path, err)
		return outcome
	}

	if formatted == string(original) {
		return outcome
	}
	outcome.Changed = true

	switch opts.Mode {
	case ModeCheck:
		return outcome
	case ModeDryRun:
		outcome.Diff = textdiff.Compute(path, string(original), formatted)
		return outcome
	case ModeWrite:
	}

	if err := snap.Verify(ctx); err != nil {
		if errors.Is(err, fsutil.ErrModified) {
			outcome.Skipped = true
			outcome.SkipReason = "file modified during processing"
			return outcome
		}
		outcome.Error = err
		return outcome
	}

	created, err := fsutil.CreateBackup(ctx, snap, original, opts.Backup)
	if err != nil {
		outcome.Error = fmt.Errorf("backup %s: %w", path, err)
		return outcome
	}
	outcome.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, []byte(formatted), snap.Mode); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
		return outcome
	}
	outcome.Written = true

	return outcome
}

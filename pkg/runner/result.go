package runner

import "github.com/yaklabco/mdblocks/pkg/textdiff"

// FileOutcome describes what happened to one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Blocks is the number of blocks the file holds after formatting.
	Blocks int

	// Changed is true if the formatted content differs from the file.
	Changed bool

	// Written is true if the formatted content was written to disk.
	Written bool

	// BackupCreated is true if a backup was written before replacing the file.
	BackupCreated bool

	// Skipped is true if a changed file was left alone, e.g. because it was
	// modified while being processed.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Diff holds the rewrite in dry-run mode.
	Diff *textdiff.Diff

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files formatted without error.
	FilesProcessed int

	// FilesChanged is the number of files whose formatted content differs.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// FilesSkipped is the number of changed files left alone.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BackupsCreated is the number of backups written.
	BackupsCreated int

	// Blocks is the total number of blocks across processed files.
	Blocks int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file's formatted content differs.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Changed returns the outcomes of files whose formatted content differs.
func (r *Result) Changed() []FileOutcome {
	if r == nil {
		return nil
	}
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Changed {
			out = append(out, f)
		}
	}
	return out
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Blocks += outcome.Blocks

	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.BackupCreated {
		r.Stats.BackupsCreated++
	}
}

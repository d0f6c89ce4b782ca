package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdblocks/pkg/runner"
)

// JSONVersion is the version of the JSON report layout.
const JSONVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Mode    string           `json:"mode"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path          string `json:"path"`
	Blocks        int    `json:"blocks"`
	Changed       bool   `json:"changed"`
	Written       bool   `json:"written,omitempty"`
	BackupCreated bool   `json:"backupCreated,omitempty"`
	Skipped       string `json:"skipped,omitempty"`
	Insertions    int    `json:"insertions,omitempty"`
	Deletions     int    `json:"deletions,omitempty"`
	Error         string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked   int `json:"filesChecked"`
	FilesChanged   int `json:"filesChanged"`
	FilesWritten   int `json:"filesWritten"`
	FilesSkipped   int `json:"filesSkipped"`
	FilesErrored   int `json:"filesErrored"`
	BackupsCreated int `json:"backupsCreated"`
	Blocks         int `json:"blocks"`
}

// JSONReporter formats results as a single JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Mode:    r.opts.Mode.String(),
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:          relativePath(r.opts.WorkingDir, file.Path),
			Blocks:        file.Blocks,
			Changed:       file.Changed,
			Written:       file.Written,
			BackupCreated: file.BackupCreated,
		}
		if file.Skipped {
			fileResult.Skipped = file.SkipReason
		}
		if file.Diff != nil {
			fileResult.Insertions = file.Diff.Insertions
			fileResult.Deletions = file.Diff.Deletions
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:   stats.FilesDiscovered,
		FilesChanged:   stats.FilesChanged,
		FilesWritten:   stats.FilesWritten,
		FilesSkipped:   stats.FilesSkipped,
		FilesErrored:   stats.FilesErrored,
		BackupsCreated: stats.BackupsCreated,
		Blocks:         stats.Blocks,
	}

	return output
}

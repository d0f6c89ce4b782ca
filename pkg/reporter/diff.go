package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdblocks/internal/ui/pretty"
	"github.com/yaklabco/mdblocks/pkg/runner"
	"github.com/yaklabco/mdblocks/pkg/textdiff"
)

// DiffReporter formats results as unified diffs in git style. Diffs exist
// only for dry runs; in other modes changed files are listed by name.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	var filesWithDiffs int
	var totalInsertions, totalDeletions int

	for _, file := range result.Files {
		displayPath := relativePath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Diff.Empty() {
			if file.Changed {
				fmt.Fprintf(r.bw, "%s %s\n", r.styles.Warning.Render("changed"), r.styles.FilePath.Render(displayPath))
			}
			continue
		}

		filesWithDiffs++
		totalInsertions += file.Diff.Insertions
		totalDeletions += file.Diff.Deletions
		r.writeDiff(displayPath, file.Diff)
	}

	if filesWithDiffs > 0 {
		r.writeSummary(filesWithDiffs, totalInsertions, totalDeletions)
	}

	return nil
}

// writeDiff outputs a single file's diff under a git-style header.
func (r *DiffReporter) writeDiff(displayPath string, diff *textdiff.Diff) {
	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(header))

	relative := *diff
	relative.Path = displayPath
	fmt.Fprint(r.bw, r.styles.FormatDiff(&relative))

	fmt.Fprintln(r.bw) // Blank line between files
}

// writeSummary writes a git-style shortstat line.
func (r *DiffReporter) writeSummary(files, insertions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralize(files, "file", "files"))}

	if insertions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", insertions, pluralize(insertions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralize(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

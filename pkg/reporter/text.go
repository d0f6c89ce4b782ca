package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdblocks/internal/ui/pretty"
	"github.com/yaklabco/mdblocks/pkg/runner"
)

// TextReporter formats results as styled terminal output: a status line
// for every file that changed or failed, diffs in dry-run mode, and a
// summary.
type TextReporter struct {
	opts    Options
	styles  *pretty.Styles
	bw      *bufio.Writer
	summary bool
}

// NewTextReporter creates a new text reporter. With summary set, the run
// ends with a summary table instead of a single line.
func NewTextReporter(opts Options, summary bool) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:    opts,
		styles:  pretty.NewStyles(colorEnabled),
		bw:      bufio.NewWriterSize(opts.Writer, bufWriterSize),
		summary: summary,
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No Markdown files found."))
		return nil
	}

	for _, file := range result.Files {
		fmt.Fprint(r.bw, r.styles.FormatOutcome(file, relativePath(r.opts.WorkingDir, file.Path)))
		if r.opts.Mode == runner.ModeDryRun && file.Diff != nil {
			fmt.Fprint(r.bw, r.styles.FormatDiff(file.Diff))
		}
	}

	if r.summary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.opts.Mode))
	} else {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Mode))
	}

	return nil
}

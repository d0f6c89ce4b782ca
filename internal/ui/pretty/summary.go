package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdblocks/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files reformatted, 5 unchanged (7 checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, mode runner.Mode) string {
	unchanged := stats.FilesProcessed - stats.FilesChanged

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted"))
	case mode == runner.ModeWrite:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted", stats.FilesWritten, plural(stats.FilesWritten))))
		if stats.FilesSkipped > 0 {
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
		}
	default:
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s would be reformatted", stats.FilesChanged, plural(stats.FilesChanged))))
	}

	if stats.FilesChanged > 0 && unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesDiscovered, plural(stats.FilesDiscovered))) + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, mode runner.Mode) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", style(strconv.Itoa(value))))
	}

	row("Files checked", s.SummaryValue.Render, stats.FilesDiscovered)
	row("Blocks", s.SummaryValue.Render, stats.Blocks)
	if stats.FilesChanged > 0 {
		row("Files changed", s.Warning.Render, stats.FilesChanged)
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render, stats.FilesWritten)
	}
	if stats.BackupsCreated > 0 {
		row("Backups created", s.SummaryValue.Render, stats.BackupsCreated)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render, stats.FilesErrored)
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed for some files"))
	case stats.FilesChanged > 0 && mode != runner.ModeWrite:
		builder.WriteString(s.Warning.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("Formatting complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatOutcome formats one file's outcome as a status line, or "" when the
// file needed no change.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, displayPath string) string {
	path := s.FilePath.Render(displayPath)
	switch {
	case outcome.Error != nil:
		return fmt.Sprintf("%s %s: %v\n", s.Failure.Render("error"), path, outcome.Error)
	case outcome.Skipped:
		return fmt.Sprintf("%s %s: %s\n", s.Warning.Render("skipped"), path, outcome.SkipReason)
	case outcome.Written:
		return fmt.Sprintf("%s %s\n", s.Success.Render("formatted"), path)
	case outcome.Changed:
		return fmt.Sprintf("%s %s\n", s.Warning.Render("unformatted"), path)
	default:
		return ""
	}
}

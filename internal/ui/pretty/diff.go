package pretty

import (
	"strings"

	"github.com/yaklabco/mdblocks/pkg/textdiff"
)

// FormatDiff renders a unified diff with colored additions and removals.
func (s *Styles) FormatDiff(diff *textdiff.Diff) string {
	if diff.Empty() {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.SplitAfter(diff.String(), "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "--- "), strings.HasPrefix(text, "+++ "):
			sb.WriteString(s.DiffHeader.Render(text))
		case strings.HasPrefix(text, "@@"):
			sb.WriteString(s.DiffHunk.Render(text))
		case strings.HasPrefix(text, "+"):
			sb.WriteString(s.DiffAdd.Render(text))
		case strings.HasPrefix(text, "-"):
			sb.WriteString(s.DiffRemove.Render(text))
		default:
			sb.WriteString(s.DiffContext.Render(text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

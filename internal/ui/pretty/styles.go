// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Block kinds
	Heading    lipgloss.Style
	Paragraph  lipgloss.Style
	Blockquote lipgloss.Style
	Code       lipgloss.Style

	// Block components
	Index    lipgloss.Style
	Key      lipgloss.Style
	Language lipgloss.Style
	Text     lipgloss.Style
	Range    lipgloss.Style
	Href     lipgloss.Style
	MetaKey  lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	FilePath     lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Paragraph:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Blockquote: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Code:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		Index:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Language: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),
		Text:     lipgloss.NewStyle(),
		Range:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Href:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),
		MetaKey:  lipgloss.NewStyle().Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		FilePath:     lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Heading:      plain,
		Paragraph:    plain,
		Blockquote:   plain,
		Code:         plain,
		Index:        plain,
		Key:          plain,
		Language:     plain,
		Text:         plain,
		Range:        plain,
		Href:         plain,
		MetaKey:      plain,
		DiffHeader:   plain,
		DiffHunk:     plain,
		DiffAdd:      plain,
		DiffRemove:   plain,
		DiffContext:  plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		FilePath:     plain,
		Success:      plain,
		Warning:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

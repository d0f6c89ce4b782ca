package block

import (
	"strings"

	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// LineKind is the classification of one physical line.
type LineKind uint8

const (
	LineBlank LineKind = iota
	LineHeading
	LineBlockquote
	LineCode
	LineParagraph
)

// String returns the lowercase name of the kind.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineHeading:
		return "heading"
	case LineBlockquote:
		return "blockquote"
	case LineCode:
		return "code"
	case LineParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Line is a classified physical line.
type Line struct {
	Kind LineKind

	// Level is the number of leading '#' for LineHeading.
	Level int

	// Content is the line with its block marker removed: the heading text,
	// the quoted text, the code line without its indent, or the whole line
	// for paragraphs.
	Content string
}

// Classify assigns a line to a block kind. Tests run in order: heading,
// blockquote, code, paragraph. A run of more than three '#' is not a heading
// and falls through to paragraph.
func Classify(line string) Line {
	if isBlank(line) {
		return Line{Kind: LineBlank}
	}

	if level, content, ok := headingPrefix(line); ok {
		return Line{Kind: LineHeading, Level: level, Content: content}
	}

	if rest, ok := strings.CutPrefix(line, ">"); ok {
		return Line{Kind: LineBlockquote, Content: strings.TrimPrefix(rest, " ")}
	}

	if rest, ok := strings.CutPrefix(line, codeIndent); ok {
		return Line{Kind: LineCode, Content: rest}
	}

	return Line{Kind: LineParagraph, Content: line}
}

// headingPrefix matches "#{1,3} " at the start of line.
func headingPrefix(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > richdoc.MaxHeadingLevel {
		return 0, "", false
	}
	if level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, line[level+1:], true
}

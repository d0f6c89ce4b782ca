// Package richdoc defines the structured rich document model produced and
// consumed by the markdown converter: typed blocks carrying flat text plus
// non-overlapping style and link ranges, and an optional metadata mapping.
//
// All offsets and lengths count Unicode code points (runes) of the block's
// plain text, never bytes of the raw markup.
package richdoc

import "unicode/utf8"

// BlockKind classifies a top-level block.
type BlockKind uint8

const (
	Paragraph BlockKind = iota
	Heading
	Blockquote
	Code
)

// String returns the lowercase name of the kind.
func (k BlockKind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Blockquote:
		return "blockquote"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// MaxHeadingLevel is the deepest heading level in the grammar.
const MaxHeadingLevel = 3

// Block is a single top-level unit of a document.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1..MaxHeadingLevel) for Heading blocks, 0 otherwise.
	Level int

	// Text is the fully de-marked plain content.
	Text string

	Styles []StyleRange
	Links  []LinkRange

	// Key identifies the block within an assembled tree. It is informational
	// and never part of the markdown text.
	Key string

	// Language is the detected language of a Code block, if any.
	Language string
}

// Document is a metadata mapping plus an ordered block sequence.
type Document struct {
	// Metadata is empty (nil or zero-length) when no front-matter was present.
	Metadata map[string]any
	Blocks   []Block
}

// HasMetadata reports whether the document carries a non-empty metadata mapping.
func (d Document) HasMetadata() bool {
	return len(d.Metadata) > 0
}

// NewParagraph returns an unstyled paragraph block.
func NewParagraph(text string) Block {
	return Block{Kind: Paragraph, Text: text}
}

// NewHeading returns an unstyled heading block of the given level.
func NewHeading(level int, text string) Block {
	return Block{Kind: Heading, Level: level, Text: text}
}

// NewBlockquote returns an unstyled blockquote block.
func NewBlockquote(text string) Block {
	return Block{Kind: Blockquote, Text: text}
}

// NewCode returns a code block. Internal newlines are preserved.
func NewCode(text string) Block {
	return Block{Kind: Code, Text: text}
}

// Len returns the length of the block text in runes.
func (b Block) Len() int {
	return TextLen(b.Text)
}

// HasRanges reports whether the block carries any style or link ranges.
func (b Block) HasRanges() bool {
	return len(b.Styles) > 0 || len(b.Links) > 0
}

// WithoutKey returns a copy of the block with Key and Language cleared.
func (b Block) WithoutKey() Block {
	b.Key = ""
	b.Language = ""
	return b
}

// TextLen returns the number of runes in s, the unit used for all offsets.
func TextLen(s string) int {
	return utf8.RuneCountInString(s)
}

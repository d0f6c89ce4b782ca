package mdast

// MarkKind classifies an inline mark on a block's text.
type MarkKind uint8

const (
	MarkBold MarkKind = iota + 1
	MarkItalic
	MarkStrikethrough
	MarkLink
)

// String returns a human-readable name for the mark kind.
func (k MarkKind) String() string {
	switch k {
	case MarkBold:
		return "bold"
	case MarkItalic:
		return "italic"
	case MarkStrikethrough:
		return "strikethrough"
	case MarkLink:
		return "link"
	default:
		return "unknown"
	}
}

// Mark annotates Text[Offset:Offset+Length] of a block, counted in runes.
type Mark struct {
	Kind   MarkKind
	Offset int
	Length int

	// Href is the link destination for MarkLink.
	Href string
}

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// Key identifies the block within its document.
	Key string

	// HeadingLevel is the heading level (1-3) for NodeHeading.
	HeadingLevel int

	// Text is the plain text of the block, markers stripped.
	Text string

	// Marks are the inline marks on Text, ordered by offset.
	Marks []Mark

	// Language is the detected language of a NodeCodeBlock, if any.
	Language string
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// WithKey sets the key and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithKey(key string) *BlockAttrs {
	a.Key = key
	return a
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithText sets the text content and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithText(text string) *BlockAttrs {
	a.Text = text
	return a
}

// WithMarks sets the inline marks and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithMarks(marks []Mark) *BlockAttrs {
	a.Marks = marks
	return a
}

// WithLanguage sets the code language and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithLanguage(language string) *BlockAttrs {
	a.Language = language
	return a
}

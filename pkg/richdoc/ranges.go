package richdoc

import "sort"

// Style is an inline emphasis style.
type Style uint8

const (
	Bold Style = iota + 1
	Italic
	Strikethrough
)

// String returns the upper-case style name used in raw content.
func (s Style) String() string {
	switch s {
	case Bold:
		return "BOLD"
	case Italic:
		return "ITALIC"
	case Strikethrough:
		return "STRIKETHROUGH"
	default:
		return "UNKNOWN"
	}
}

// ParseStyle converts a raw style name back into a Style.
func ParseStyle(name string) (Style, bool) {
	switch name {
	case "BOLD":
		return Bold, true
	case "ITALIC":
		return Italic, true
	case "STRIKETHROUGH":
		return Strikethrough, true
	default:
		return 0, false
	}
}

// StyleRange marks Text[Offset:Offset+Length] with a style.
type StyleRange struct {
	Style  Style
	Offset int
	Length int
}

// End returns the exclusive end offset.
func (r StyleRange) End() int {
	return r.Offset + r.Length
}

// LinkRange marks Text[Offset:Offset+Length] as a hyperlink to Href.
type LinkRange struct {
	Offset int
	Length int
	Href   string
}

// End returns the exclusive end offset.
func (r LinkRange) End() int {
	return r.Offset + r.Length
}

// SpanKind distinguishes the two span classes that share a block's text.
type SpanKind uint8

const (
	SpanStyle SpanKind = iota
	SpanLink
)

// Span is a style or link range viewed uniformly.
type Span struct {
	Kind   SpanKind
	Style  Style
	Href   string
	Offset int
	Length int
}

// End returns the exclusive end offset.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Spans merges styles and links into one slice ordered by offset.
// Ties keep styles before links; valid input never produces ties.
func Spans(styles []StyleRange, links []LinkRange) []Span {
	spans := make([]Span, 0, len(styles)+len(links))
	for _, r := range styles {
		spans = append(spans, Span{Kind: SpanStyle, Style: r.Style, Offset: r.Offset, Length: r.Length})
	}
	for _, r := range links {
		spans = append(spans, Span{Kind: SpanLink, Href: r.Href, Offset: r.Offset, Length: r.Length})
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Offset < spans[j].Offset
	})
	return spans
}

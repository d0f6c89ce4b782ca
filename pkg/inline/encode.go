package inline

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// Encode reconstructs markup from plain text and its ranges. It is the
// inverse of Decode: Decode(Encode(text, styles, links)) yields the same
// triple for ranges ordered by offset.
//
// The ranges must satisfy the block invariants; a violation is a caller bug
// and is reported as an error wrapping one of the richdoc sentinel errors.
func Encode(text string, styles []richdoc.StyleRange, links []richdoc.LinkRange) (string, error) {
	runes := []rune(text)
	if err := richdoc.ValidateRanges(len(runes), styles, links); err != nil {
		return "", fmt.Errorf("encode inline: %w", err)
	}

	var buf strings.Builder
	buf.Grow(len(text) + 8*(len(styles)+len(links)))

	pos := 0
	for _, span := range richdoc.Spans(styles, links) {
		writeText(&buf, runes[pos:span.Offset])
		switch span.Kind {
		case richdoc.SpanLink:
			buf.WriteByte('[')
			writeText(&buf, runes[span.Offset:span.End()])
			buf.WriteString("](")
			writeHref(&buf, span.Href)
			buf.WriteByte(')')
		case richdoc.SpanStyle:
			marker := styleMarker(span.Style)
			buf.WriteString(marker)
			writeText(&buf, runes[span.Offset:span.End()])
			buf.WriteString(marker)
		}
		pos = span.End()
	}
	writeText(&buf, runes[pos:])

	return buf.String(), nil
}

func styleMarker(style richdoc.Style) string {
	switch style {
	case richdoc.Bold:
		return "**"
	case richdoc.Italic:
		return "_"
	case richdoc.Strikethrough:
		return "~~"
	default:
		return ""
	}
}

func writeText(buf *strings.Builder, runes []rune) {
	for _, r := range runes {
		if needsTextEscape(r) {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
}

func writeHref(buf *strings.Builder, href string) {
	for _, r := range href {
		if needsHrefEscape(r) {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
}

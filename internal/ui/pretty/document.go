package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// maxTextWidth bounds the quoted block text shown per line, in runes.
const maxTextWidth = 60

// FormatDocument renders the block and range structure of doc for the
// inspect command. Offsets are shown as half-open rune intervals.
func (s *Styles) FormatDocument(doc richdoc.Document) string {
	var sb strings.Builder

	if doc.HasMetadata() {
		sb.WriteString(s.SummaryTitle.Render("metadata") + "\n")
		keys := make([]string, 0, len(doc.Metadata))
		for k := range doc.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %v\n", s.MetaKey.Render(k), doc.Metadata[k])
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%s %s\n", s.SummaryTitle.Render("blocks"), s.Dim.Render("("+strconv.Itoa(len(doc.Blocks))+")"))
	for i, b := range doc.Blocks {
		s.formatBlock(&sb, i, b)
	}

	return sb.String()
}

func (s *Styles) formatBlock(sb *strings.Builder, index int, b richdoc.Block) {
	fmt.Fprintf(sb, "  %s %s", s.Index.Render(fmt.Sprintf("%3d", index)), s.kindLabel(b))
	if b.Language != "" {
		sb.WriteString(" " + s.Language.Render(b.Language))
	}
	if b.Key != "" {
		sb.WriteString(" " + s.Key.Render(b.Key))
	}
	sb.WriteString("\n")

	if b.Kind == richdoc.Code {
		for _, line := range strings.Split(b.Text, "\n") {
			sb.WriteString("      " + s.Dim.Render("|") + " " + s.Code.Render(line) + "\n")
		}
		return
	}

	sb.WriteString("      " + s.Text.Render(quote(b.Text)) + "\n")

	runes := []rune(b.Text)
	for _, span := range richdoc.Spans(b.Styles, b.Links) {
		label := span.Style.String()
		if span.Kind == richdoc.SpanLink {
			label = "link"
		}
		line := fmt.Sprintf("      %-13s %s %s",
			s.Range.Render(label),
			s.Dim.Render(fmt.Sprintf("[%d,%d)", span.Offset, span.End())),
			quote(sliceRunes(runes, span.Offset, span.End())))
		if span.Kind == richdoc.SpanLink {
			line += " -> " + s.Href.Render(span.Href)
		}
		sb.WriteString(line + "\n")
	}
}

func (s *Styles) kindLabel(b richdoc.Block) string {
	switch b.Kind {
	case richdoc.Heading:
		return s.Heading.Render(fmt.Sprintf("heading-%d", b.Level))
	case richdoc.Blockquote:
		return s.Blockquote.Render("blockquote")
	case richdoc.Code:
		return s.Code.Render("code")
	default:
		return s.Paragraph.Render(b.Kind.String())
	}
}

// quote returns text Go-quoted, truncated to maxTextWidth runes.
func quote(text string) string {
	runes := []rune(text)
	if len(runes) > maxTextWidth {
		return strconv.Quote(string(runes[:maxTextWidth-1])) + "…"
	}
	return strconv.Quote(text)
}

// sliceRunes returns runes[start:end] as a string, clamped to bounds.
func sliceRunes(runes []rune, start, end int) string {
	start = max(0, min(start, len(runes)))
	end = max(start, min(end, len(runes)))
	return string(runes[start:end])
}

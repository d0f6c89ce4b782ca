package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdblocks/internal/ui/pretty"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	doc := richdoc.Document{
		Metadata: map[string]any{"title": "Hello", "author": "Ann"},
		Blocks: []richdoc.Block{
			{Kind: richdoc.Heading, Level: 2, Text: "Intro", Key: "k1"},
			{
				Kind:   richdoc.Paragraph,
				Text:   "see docs now",
				Styles: []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 8, Length: 3}},
				Links:  []richdoc.LinkRange{{Offset: 4, Length: 4, Href: "https://x.io"}},
			},
			{Kind: richdoc.Code, Text: "a := 1\nb := 2", Language: "go"},
		},
	}

	out := pretty.NewStyles(false).FormatDocument(doc)

	assert.Contains(t, out, "metadata\n  author: Ann\n  title: Hello\n")
	assert.Contains(t, out, "blocks (3)")
	assert.Contains(t, out, "  0 heading-2 k1\n")
	assert.Contains(t, out, `"see docs now"`)
	assert.Contains(t, out, "  2 code go\n")
	assert.Contains(t, out, "| a := 1\n")
	assert.Contains(t, out, "| b := 2\n")

	// Spans are listed in offset order.
	link := strings.Index(out, "link")
	bold := strings.Index(out, "bold")
	assert.Positive(t, link)
	assert.Less(t, link, bold)
	assert.Contains(t, out, `[4,8) "docs" -> https://x.io`)
	assert.Contains(t, out, `[8,11) "now"`)
}

func TestFormatDocument_NoMetadata(t *testing.T) {
	t.Parallel()

	out := pretty.NewStyles(false).FormatDocument(richdoc.Document{})
	assert.NotContains(t, out, "metadata")
	assert.Contains(t, out, "blocks (0)")
}

func TestFormatDocument_TruncatesLongText(t *testing.T) {
	t.Parallel()

	doc := richdoc.Document{Blocks: []richdoc.Block{richdoc.NewParagraph(strings.Repeat("é", 100))}}
	out := pretty.NewStyles(false).FormatDocument(doc)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("é", 60))
}

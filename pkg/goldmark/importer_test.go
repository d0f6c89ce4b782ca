package goldmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdblocks/pkg/goldmark"
	"github.com/yaklabco/mdblocks/pkg/markdown"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

func importGFM(t *testing.T, src string) richdoc.Document {
	t.Helper()

	doc, err := goldmark.NewImporter(goldmark.FlavorGFM).Import(context.Background(), []byte(src))
	require.NoError(t, err)
	return doc
}

func TestNewImporter_Flavor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, goldmark.FlavorCommonMark, goldmark.NewImporter("commonmark").Flavor())
	assert.Equal(t, goldmark.FlavorGFM, goldmark.NewImporter("gfm").Flavor())
	assert.Equal(t, goldmark.FlavorGFM, goldmark.NewImporter("unknown").Flavor())
}

func TestImport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []richdoc.Block
	}{
		{
			name: "heading levels are clamped",
			src:  "# One\n\n###### Six",
			want: []richdoc.Block{richdoc.NewHeading(1, "One"), richdoc.NewHeading(3, "Six")},
		},
		{
			name: "soft breaks join lines",
			src:  "line one\nline two",
			want: []richdoc.Block{richdoc.NewParagraph("line one line two")},
		},
		{
			name: "inline styles and links",
			src:  "Hello *world* and **bold** ~~gone~~ [link](http://x)",
			want: []richdoc.Block{{
				Kind: richdoc.Paragraph,
				Text: "Hello world and bold gone link",
				Styles: []richdoc.StyleRange{
					{Style: richdoc.Italic, Offset: 6, Length: 5},
					{Style: richdoc.Bold, Offset: 16, Length: 4},
					{Style: richdoc.Strikethrough, Offset: 21, Length: 4},
				},
				Links: []richdoc.LinkRange{{Offset: 26, Length: 4, Href: "http://x"}},
			}},
		},
		{
			name: "outermost style wins",
			src:  "*a **b** c*",
			want: []richdoc.Block{{
				Kind:   richdoc.Paragraph,
				Text:   "a b c",
				Styles: []richdoc.StyleRange{{Style: richdoc.Italic, Offset: 0, Length: 5}},
			}},
		},
		{
			name: "bullet list",
			src:  "- one\n- two",
			want: []richdoc.Block{richdoc.NewParagraph("- one"), richdoc.NewParagraph("- two")},
		},
		{
			name: "ordered list keeps numbering",
			src:  "3. a\n4. b",
			want: []richdoc.Block{richdoc.NewParagraph("3. a"), richdoc.NewParagraph("4. b")},
		},
		{
			name: "blockquote lines",
			src:  "> quoted\n> more",
			want: []richdoc.Block{richdoc.NewBlockquote("quoted more")},
		},
		{
			name: "fenced code keeps language",
			src:  "```go\nfmt.Println()\n```",
			want: []richdoc.Block{{Kind: richdoc.Code, Text: "fmt.Println()", Language: "go"}},
		},
		{
			name: "thematic break is dropped",
			src:  "a\n\n***\n\nb",
			want: []richdoc.Block{richdoc.NewParagraph("a"), richdoc.NewParagraph("b")},
		},
		{
			name: "code span is plain text",
			src:  "run `go test`",
			want: []richdoc.Block{richdoc.NewParagraph("run go test")},
		},
		{
			name: "blank line splits fenced code",
			src:  "```sh\na\n\nb\n```",
			want: []richdoc.Block{
				{Kind: richdoc.Code, Text: "a", Language: "sh"},
				{Kind: richdoc.Code, Text: "b", Language: "sh"},
			},
		},
		{
			name: "blank table row is dropped",
			src:  "| a | b |\n|---|---|\n|   |   |\n| c | d |",
			want: []richdoc.Block{richdoc.NewParagraph("a | b"), richdoc.NewParagraph("c | d")},
		},
		{
			name: "empty fence is dropped",
			src:  "```\n```",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := importGFM(t, tc.src)
			assert.Equal(t, tc.want, doc.Blocks)
		})
	}
}

func TestImport_FrontMatter(t *testing.T) {
	t.Parallel()

	doc := importGFM(t, "---\ntitle: X\n---\n# H\n")
	assert.Equal(t, map[string]any{"title": "X"}, doc.Metadata)
	assert.Equal(t, []richdoc.Block{richdoc.NewHeading(1, "H")}, doc.Blocks)
}

func TestImport_CommonMarkHasNoStrikethrough(t *testing.T) {
	t.Parallel()

	doc, err := goldmark.NewImporter(goldmark.FlavorCommonMark).Import(context.Background(), []byte("~~x~~"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "~~x~~", doc.Blocks[0].Text)
	assert.Empty(t, doc.Blocks[0].Styles)
}

func TestImport_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := goldmark.NewImporter(goldmark.FlavorGFM).Import(ctx, []byte("# x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestImport_ResultIsStable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{
			name: "mixed blocks",
			src: "# Title\n\nSome *text* with a [link](a.md).\n\n" +
				"- item **one**\n- item two\n\n> quote\n\n```sh\necho hi\n```\n\n##### Deep *heading*\n",
		},
		{name: "fenced code with blank line", src: "```\na\n\nb\n```\n"},
		{name: "fenced code with whitespace line", src: "```\na\n   \nb\n```\n"},
		{name: "indented code with blank line", src: "    a\n\n    b\n"},
		{name: "html block with blank line", src: "<pre>\na\n\nb\n</pre>\n"},
		{name: "crlf fenced code", src: "```\r\na\r\n\r\nb\r\n```\r\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc := importGFM(t, tc.src)
			require.NoError(t, richdoc.Validate(doc))

			out, err := markdown.Format(doc)
			require.NoError(t, err)

			back, err := markdown.Parse(out)
			require.NoError(t, err)

			want := make([]richdoc.Block, 0, len(doc.Blocks))
			for _, b := range doc.Blocks {
				want = append(want, b.WithoutKey())
			}
			got := make([]richdoc.Block, 0, len(back.Blocks))
			for _, b := range back.Blocks {
				got = append(got, b.WithoutKey())
			}
			assert.Equal(t, want, got)
		})
	}
}

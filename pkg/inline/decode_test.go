package inline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdblocks/pkg/inline"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		wantText   string
		wantStyles []richdoc.StyleRange
		wantLinks  []richdoc.LinkRange
	}{
		{
			name:     "plain text",
			raw:      "Hello World",
			wantText: "Hello World",
		},
		{
			name:       "bold",
			raw:        "Hello **World**",
			wantText:   "Hello World",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 6, Length: 5}},
		},
		{
			name:       "italic",
			raw:        "Hello _World_",
			wantText:   "Hello World",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Italic, Offset: 6, Length: 5}},
		},
		{
			name:       "strikethrough",
			raw:        "Hello ~~World~~",
			wantText:   "Hello World",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Strikethrough, Offset: 6, Length: 5}},
		},
		{
			name:     "several styles",
			raw:      "**a** and _b_ or ~~c~~",
			wantText: "a and b or c",
			wantStyles: []richdoc.StyleRange{
				{Style: richdoc.Bold, Offset: 0, Length: 1},
				{Style: richdoc.Italic, Offset: 6, Length: 1},
				{Style: richdoc.Strikethrough, Offset: 11, Length: 1},
			},
		},
		{
			name:     "adjacent spans",
			raw:      "**ab**_cd_",
			wantText: "abcd",
			wantStyles: []richdoc.StyleRange{
				{Style: richdoc.Bold, Offset: 0, Length: 2},
				{Style: richdoc.Italic, Offset: 2, Length: 2},
			},
		},
		{
			name:       "non-greedy closer",
			raw:        "**a** b **c**",
			wantText:   "a b c",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 0, Length: 1}, {Style: richdoc.Bold, Offset: 4, Length: 1}},
		},
		{
			name:       "markers do not nest",
			raw:        "**a _b_ c**",
			wantText:   "a _b_ c",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 0, Length: 7}},
		},
		{
			name:       "offsets after multibyte text",
			raw:        "héllo **wörld**",
			wantText:   "héllo wörld",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 6, Length: 5}},
		},
		{
			name:      "link",
			raw:       "[Hello World](page.md)",
			wantText:  "Hello World",
			wantLinks: []richdoc.LinkRange{{Offset: 0, Length: 11, Href: "page.md"}},
		},
		{
			name:      "link inside sentence",
			raw:       "See [the docs](https://example.com/a_b) now",
			wantText:  "See the docs now",
			wantLinks: []richdoc.LinkRange{{Offset: 4, Length: 8, Href: "https://example.com/a_b"}},
		},
		{
			name:      "link label markers are stripped",
			raw:       "[**Hello**](page.md)",
			wantText:  "Hello",
			wantLinks: []richdoc.LinkRange{{Offset: 0, Length: 5, Href: "page.md"}},
		},
		{
			name:       "link and style",
			raw:        "_x_ [y](z)",
			wantText:   "x y",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Italic, Offset: 0, Length: 1}},
			wantLinks:  []richdoc.LinkRange{{Offset: 2, Length: 1, Href: "z"}},
		},
		{
			name:      "empty href",
			raw:       "[a]()",
			wantText:  "a",
			wantLinks: []richdoc.LinkRange{{Offset: 0, Length: 1, Href: ""}},
		},
		{
			name:     "dangling bold",
			raw:      "Hello **World",
			wantText: "Hello **World",
		},
		{
			name:     "dangling italic",
			raw:      "snake_case",
			wantText: "snake_case",
		},
		{
			name:     "dangling strikethrough",
			raw:      "~~gone",
			wantText: "~~gone",
		},
		{
			name:     "empty emphasis is literal",
			raw:      "****",
			wantText: "****",
		},
		{
			name:     "bracket without destination",
			raw:      "[not a link] here",
			wantText: "[not a link] here",
		},
		{
			name:     "unterminated destination",
			raw:      "[a](b",
			wantText: "[a](b",
		},
		{
			name:     "empty label",
			raw:      "[](x)",
			wantText: "[](x)",
		},
		{
			name:     "escapes",
			raw:      `\*\*not bold\*\* \_ \[x\] \\ \# \>`,
			wantText: `**not bold** _ [x] \ # >`,
		},
		{
			name:     "escaped dash",
			raw:      `\---`,
			wantText: `---`,
		},
		{
			name:     "backslash before ordinary char",
			raw:      `C:\path`,
			wantText: `C:\path`,
		},
		{
			name:       "escaped closer is skipped",
			raw:        `**a\*b**`,
			wantText:   "a*b",
			wantStyles: []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 0, Length: 3}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			text, styles, links := inline.Decode(tc.raw)
			assert.Equal(t, tc.wantText, text)
			assert.Equal(t, tc.wantStyles, styles)
			assert.Equal(t, tc.wantLinks, links)
		})
	}
}

func TestDecode_RangesSatisfyInvariants(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"**a** _b_ ~~c~~ [d](e)",
		"_a_b_c_",
		"**a**b**",
		"[a](b)[c](d)",
		"~~~~~",
		"[x [y](z)](w)",
	}

	for _, raw := range inputs {
		text, styles, links := inline.Decode(raw)
		assert.NoError(t, richdoc.ValidateRanges(richdoc.TextLen(text), styles, links), "input %q", raw)
	}
}

package richdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

func TestValidateRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		textLen int
		styles  []richdoc.StyleRange
		links   []richdoc.LinkRange
		wantErr error
	}{
		{
			name:    "no ranges",
			textLen: 5,
		},
		{
			name:    "adjacent styles",
			textLen: 4,
			styles: []richdoc.StyleRange{
				{Style: richdoc.Bold, Offset: 0, Length: 2},
				{Style: richdoc.Italic, Offset: 2, Length: 2},
			},
		},
		{
			name:    "style and link disjoint",
			textLen: 10,
			styles:  []richdoc.StyleRange{{Style: richdoc.Strikethrough, Offset: 6, Length: 4}},
			links:   []richdoc.LinkRange{{Offset: 0, Length: 5, Href: "a.md"}},
		},
		{
			name:    "overlapping styles",
			textLen: 10,
			styles: []richdoc.StyleRange{
				{Style: richdoc.Bold, Offset: 0, Length: 5},
				{Style: richdoc.Italic, Offset: 4, Length: 2},
			},
			wantErr: richdoc.ErrOverlappingRanges,
		},
		{
			name:    "same offset",
			textLen: 10,
			styles: []richdoc.StyleRange{
				{Style: richdoc.Bold, Offset: 2, Length: 1},
				{Style: richdoc.Italic, Offset: 2, Length: 1},
			},
			wantErr: richdoc.ErrOverlappingRanges,
		},
		{
			name:    "link inside style",
			textLen: 10,
			styles:  []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 0, Length: 8}},
			links:   []richdoc.LinkRange{{Offset: 2, Length: 2, Href: "x"}},
			wantErr: richdoc.ErrOverlappingRanges,
		},
		{
			name:    "out of bounds",
			textLen: 3,
			styles:  []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 1, Length: 3}},
			wantErr: richdoc.ErrRangeOutOfBounds,
		},
		{
			name:    "zero length",
			textLen: 3,
			links:   []richdoc.LinkRange{{Offset: 1, Length: 0}},
			wantErr: richdoc.ErrEmptyRange,
		},
		{
			name:    "negative offset",
			textLen: 3,
			styles:  []richdoc.StyleRange{{Style: richdoc.Bold, Offset: -1, Length: 1}},
			wantErr: richdoc.ErrEmptyRange,
		},
		{
			name:    "unknown style",
			textLen: 3,
			styles:  []richdoc.StyleRange{{Style: 0, Offset: 0, Length: 1}},
			wantErr: richdoc.ErrUnknownStyle,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := richdoc.ValidateRanges(tc.textLen, tc.styles, tc.links)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateBlock(t *testing.T) {
	t.Parallel()

	t.Run("code block with ranges", func(t *testing.T) {
		t.Parallel()

		b := richdoc.NewCode("x := 1")
		b.Styles = []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 0, Length: 1}}
		assert.ErrorIs(t, richdoc.ValidateBlock(b), richdoc.ErrCodeBlockRanges)
	})

	t.Run("heading levels", func(t *testing.T) {
		t.Parallel()

		for level := 1; level <= richdoc.MaxHeadingLevel; level++ {
			assert.NoError(t, richdoc.ValidateBlock(richdoc.NewHeading(level, "Hello")))
		}
		assert.ErrorIs(t, richdoc.ValidateBlock(richdoc.NewHeading(0, "Hello")), richdoc.ErrInvalidHeadingLevel)
		assert.ErrorIs(t, richdoc.ValidateBlock(richdoc.NewHeading(4, "Hello")), richdoc.ErrInvalidHeadingLevel)
	})

	t.Run("offsets count runes", func(t *testing.T) {
		t.Parallel()

		b := richdoc.NewParagraph("héllo wörld")
		b.Styles = []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 6, Length: 5}}
		assert.NoError(t, richdoc.ValidateBlock(b))
	})

	t.Run("line breaks only in code", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, richdoc.ValidateBlock(richdoc.NewParagraph("a\nb")), richdoc.ErrMultilineText)
		assert.ErrorIs(t, richdoc.ValidateBlock(richdoc.NewBlockquote("a\nb")), richdoc.ErrMultilineText)
		assert.NoError(t, richdoc.ValidateBlock(richdoc.NewCode("a\nb")))
	})

	t.Run("blank code lines", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, richdoc.ValidateBlock(richdoc.NewCode("a\n\nb")), richdoc.ErrBlankCodeLine)
		assert.ErrorIs(t, richdoc.ValidateBlock(richdoc.NewCode("a\n \t\nb")), richdoc.ErrBlankCodeLine)
		assert.ErrorIs(t, richdoc.ValidateBlock(richdoc.NewCode("")), richdoc.ErrBlankCodeLine)
	})
}

func TestValidate_JoinsErrors(t *testing.T) {
	t.Parallel()

	bad := richdoc.NewParagraph("ab")
	bad.Styles = []richdoc.StyleRange{{Style: richdoc.Bold, Offset: 0, Length: 3}}

	doc := richdoc.Document{
		Blocks: []richdoc.Block{
			richdoc.NewParagraph("ok"),
			bad,
			richdoc.NewHeading(9, "deep"),
		},
	}

	err := richdoc.Validate(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, richdoc.ErrRangeOutOfBounds)
	assert.ErrorIs(t, err, richdoc.ErrInvalidHeadingLevel)
	assert.Contains(t, err.Error(), "block 1 (paragraph)")
}

func TestSpans_OrderedByOffset(t *testing.T) {
	t.Parallel()

	spans := richdoc.Spans(
		[]richdoc.StyleRange{{Style: richdoc.Italic, Offset: 8, Length: 2}},
		[]richdoc.LinkRange{{Offset: 0, Length: 3, Href: "a"}},
	)

	require.Len(t, spans, 2)
	assert.Equal(t, richdoc.SpanLink, spans[0].Kind)
	assert.Equal(t, richdoc.SpanStyle, spans[1].Kind)
	assert.Equal(t, 10, spans[1].End())
}

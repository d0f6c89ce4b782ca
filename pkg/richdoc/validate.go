package richdoc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for invariant violations. They signal caller bugs: decoded
// documents never violate them.
var (
	// ErrOverlappingRanges indicates two style or link ranges share a character.
	ErrOverlappingRanges = errors.New("overlapping ranges")

	// ErrRangeOutOfBounds indicates a range extends past the block text.
	ErrRangeOutOfBounds = errors.New("range out of bounds")

	// ErrEmptyRange indicates a range with a negative offset or non-positive length.
	ErrEmptyRange = errors.New("empty or negative range")

	// ErrCodeBlockRanges indicates a code block carrying style or link ranges.
	ErrCodeBlockRanges = errors.New("code block carries inline ranges")

	// ErrInvalidHeadingLevel indicates a heading level outside 1..MaxHeadingLevel.
	ErrInvalidHeadingLevel = errors.New("invalid heading level")

	// ErrUnknownStyle indicates a style value outside the enumeration.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrMultilineText indicates a line break in the text of a single-line
	// block kind.
	ErrMultilineText = errors.New("line break in single-line block")

	// ErrBlankCodeLine indicates a code block with an empty or
	// whitespace-only line, which would end the block when written.
	ErrBlankCodeLine = errors.New("blank line in code block")
)

// ValidateRanges checks the range invariants against a text of textLen runes:
// every range is in bounds with positive length, and no two ranges of either
// class overlap.
func ValidateRanges(textLen int, styles []StyleRange, links []LinkRange) error {
	for _, r := range styles {
		if r.Style < Bold || r.Style > Strikethrough {
			return fmt.Errorf("%w: %d", ErrUnknownStyle, r.Style)
		}
	}

	spans := Spans(styles, links)
	prevEnd := 0
	for i, s := range spans {
		if s.Offset < 0 || s.Length <= 0 {
			return fmt.Errorf("%w: offset %d length %d", ErrEmptyRange, s.Offset, s.Length)
		}
		if s.End() > textLen {
			return fmt.Errorf("%w: [%d,%d) exceeds text length %d", ErrRangeOutOfBounds, s.Offset, s.End(), textLen)
		}
		if i > 0 && s.Offset < prevEnd {
			return fmt.Errorf("%w: range at %d starts before previous range ends at %d",
				ErrOverlappingRanges, s.Offset, prevEnd)
		}
		prevEnd = s.End()
	}
	return nil
}

// ValidateBlock checks all invariants of a single block.
func ValidateBlock(b Block) error {
	switch b.Kind {
	case Code:
		if b.HasRanges() {
			return ErrCodeBlockRanges
		}
		for i, line := range strings.Split(b.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				return fmt.Errorf("%w: line %d", ErrBlankCodeLine, i+1)
			}
		}
		return nil
	case Heading:
		if b.Level < 1 || b.Level > MaxHeadingLevel {
			return fmt.Errorf("%w: %d", ErrInvalidHeadingLevel, b.Level)
		}
	case Paragraph, Blockquote:
	default:
		return fmt.Errorf("unknown block kind %d", b.Kind)
	}
	if strings.Contains(b.Text, "\n") {
		return ErrMultilineText
	}
	return ValidateRanges(b.Len(), b.Styles, b.Links)
}

// Validate checks every block of the document and joins all violations.
func Validate(doc Document) error {
	var errs []error
	for i, b := range doc.Blocks {
		if err := ValidateBlock(b); err != nil {
			errs = append(errs, fmt.Errorf("block %d (%s): %w", i, b.Kind, err))
		}
	}
	return errors.Join(errs...)
}

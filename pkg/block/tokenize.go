package block

import (
	"strings"

	"github.com/yaklabco/mdblocks/pkg/inline"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// Tokenize partitions body into blocks in source order. The returned blocks
// carry raw, unresolved inline markup in Text; pass them to Resolve to strip
// markers into ranges. Tokenize never fails.
func Tokenize(body string) []richdoc.Block {
	lines := splitLines(body)
	blocks := make([]richdoc.Block, 0, len(lines))

	for cursor := 0; cursor < len(lines); {
		line := Classify(lines[cursor])
		cursor++

		switch line.Kind {
		case LineBlank:
			continue
		case LineHeading:
			blocks = append(blocks, richdoc.NewHeading(line.Level, line.Content))
		case LineBlockquote:
			blocks = append(blocks, richdoc.NewBlockquote(line.Content))
		case LineCode:
			code := []string{line.Content}
			for cursor < len(lines) {
				next := Classify(lines[cursor])
				if next.Kind != LineCode {
					break
				}
				code = append(code, next.Content)
				cursor++
			}
			blocks = append(blocks, richdoc.NewCode(strings.Join(code, "\n")))
		case LineParagraph:
			blocks = append(blocks, richdoc.NewParagraph(line.Content))
		}
	}

	return blocks
}

// Resolve decodes the inline markup of every non-code block in place and
// returns the same slice. Code text is verbatim.
func Resolve(blocks []richdoc.Block) []richdoc.Block {
	for i := range blocks {
		if blocks[i].Kind == richdoc.Code {
			continue
		}
		blocks[i].Text, blocks[i].Styles, blocks[i].Links = inline.Decode(blocks[i].Text)
	}
	return blocks
}

// Parse tokenizes body and resolves inline markup.
func Parse(body string) []richdoc.Block {
	return Resolve(Tokenize(body))
}

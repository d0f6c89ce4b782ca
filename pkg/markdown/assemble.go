package markdown

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/pkg/langdetect"
	"github.com/yaklabco/mdblocks/pkg/mdast"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

var (
	// ErrNotDocument indicates a tree whose root is not a document node.
	ErrNotDocument = errors.New("root is not a document node")

	// ErrUnknownBlockNode indicates a child node the serializer cannot render.
	ErrUnknownBlockNode = errors.New("unknown block node")

	// ErrUnknownMark indicates an inline mark of an unknown kind.
	ErrUnknownMark = errors.New("unknown inline mark")

	// ErrNestedNode indicates a block node below another block node.
	ErrNestedNode = errors.New("nested block node")
)

// Assemble builds a document tree from doc: metadata becomes the document
// node's data and every block becomes one child node in order. Blocks
// without a key get a fresh one; code blocks get a detected language when
// detection is enabled.
func (c *Converter) Assemble(doc richdoc.Document) *mdast.Node {
	root := mdast.NewDocument(doc.Metadata)

	for _, b := range doc.Blocks {
		attrs := mdast.NewBlockAttrs().
			WithKey(b.Key).
			WithText(b.Text).
			WithMarks(marksFromRanges(b.Styles, b.Links)).
			WithLanguage(b.Language)

		if attrs.Key == "" {
			attrs.Key = c.newKey()
		}
		if b.Kind == richdoc.Heading {
			attrs.HeadingLevel = b.Level
		}
		if b.Kind == richdoc.Code && attrs.Language == "" && c.detectLanguage {
			attrs.Language = langdetect.Detect(b.Text)
		}

		mdast.AppendChild(root, mdast.Create(nodeKind(b.Kind), attrs))
	}

	c.logger.Debug("assembled document",
		logging.FieldBlocks, root.ChildCount(),
		logging.FieldMetadata, len(doc.Metadata))

	return root
}

// Disassemble reads a document tree back into metadata and ordered blocks.
// Any node other than the four block kinds is rejected, as is any node
// below a block.
func Disassemble(root *mdast.Node) (richdoc.Document, error) {
	if root == nil || root.Kind != mdast.NodeDocument {
		return richdoc.Document{}, ErrNotDocument
	}

	doc := richdoc.Document{Metadata: root.Data}

	err := mdast.Walk(root, func(n *mdast.Node, depth int) error {
		switch {
		case depth == 0:
			return nil
		case depth > 1:
			return fmt.Errorf("child %d: %w: %s", len(doc.Blocks)-1, ErrNestedNode, n.Kind)
		}

		b, err := blockFromNode(n)
		if err != nil {
			return fmt.Errorf("child %d: %w", len(doc.Blocks), err)
		}
		doc.Blocks = append(doc.Blocks, b)
		return nil
	})
	if err != nil {
		return richdoc.Document{}, err
	}

	return doc, nil
}

func blockFromNode(n *mdast.Node) (richdoc.Block, error) {
	kind, ok := blockKind(n.Kind)
	if !ok || n.Block == nil {
		return richdoc.Block{}, fmt.Errorf("%w: %s", ErrUnknownBlockNode, n.Kind)
	}

	styles, links, err := rangesFromMarks(n.Block.Marks)
	if err != nil {
		return richdoc.Block{}, err
	}

	b := richdoc.Block{
		Kind:     kind,
		Text:     n.Block.Text,
		Styles:   styles,
		Links:    links,
		Key:      n.Block.Key,
		Language: n.Block.Language,
	}
	if kind == richdoc.Heading {
		b.Level = n.Block.HeadingLevel
	}
	return b, nil
}

func nodeKind(kind richdoc.BlockKind) mdast.NodeKind {
	switch kind {
	case richdoc.Heading:
		return mdast.NodeHeading
	case richdoc.Blockquote:
		return mdast.NodeBlockquote
	case richdoc.Code:
		return mdast.NodeCodeBlock
	default:
		return mdast.NodeParagraph
	}
}

func blockKind(kind mdast.NodeKind) (richdoc.BlockKind, bool) {
	switch kind {
	case mdast.NodeParagraph:
		return richdoc.Paragraph, true
	case mdast.NodeHeading:
		return richdoc.Heading, true
	case mdast.NodeBlockquote:
		return richdoc.Blockquote, true
	case mdast.NodeCodeBlock:
		return richdoc.Code, true
	default:
		return 0, false
	}
}

// marksFromRanges flattens styles and links into marks ordered by offset.
func marksFromRanges(styles []richdoc.StyleRange, links []richdoc.LinkRange) []mdast.Mark {
	spans := richdoc.Spans(styles, links)
	if len(spans) == 0 {
		return nil
	}

	marks := make([]mdast.Mark, 0, len(spans))
	for _, s := range spans {
		m := mdast.Mark{Offset: s.Offset, Length: s.Length}
		if s.Kind == richdoc.SpanLink {
			m.Kind = mdast.MarkLink
			m.Href = s.Href
		} else {
			m.Kind = markKind(s.Style)
		}
		marks = append(marks, m)
	}
	return marks
}

func markKind(style richdoc.Style) mdast.MarkKind {
	switch style {
	case richdoc.Bold:
		return mdast.MarkBold
	case richdoc.Italic:
		return mdast.MarkItalic
	case richdoc.Strikethrough:
		return mdast.MarkStrikethrough
	default:
		return 0
	}
}

func rangesFromMarks(marks []mdast.Mark) ([]richdoc.StyleRange, []richdoc.LinkRange, error) {
	var (
		styles []richdoc.StyleRange
		links  []richdoc.LinkRange
	)

	for _, m := range marks {
		switch m.Kind {
		case mdast.MarkBold:
			styles = append(styles, richdoc.StyleRange{Style: richdoc.Bold, Offset: m.Offset, Length: m.Length})
		case mdast.MarkItalic:
			styles = append(styles, richdoc.StyleRange{Style: richdoc.Italic, Offset: m.Offset, Length: m.Length})
		case mdast.MarkStrikethrough:
			styles = append(styles, richdoc.StyleRange{Style: richdoc.Strikethrough, Offset: m.Offset, Length: m.Length})
		case mdast.MarkLink:
			links = append(links, richdoc.LinkRange{Offset: m.Offset, Length: m.Length, Href: m.Href})
		default:
			return nil, nil, fmt.Errorf("%w: %d", ErrUnknownMark, m.Kind)
		}
	}

	return styles, links, nil
}

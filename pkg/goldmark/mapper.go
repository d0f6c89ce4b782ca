package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// tableCellSeparator joins the cells of a table row into one paragraph.
const tableCellSeparator = " | "

// blockContext carries the state that container nodes impose on the blocks
// they contain.
type blockContext struct {
	// quoted is set inside a blockquote; text blocks become Blockquote.
	quoted bool

	// prefix is prepended to the next text block, for list item markers.
	prefix string
}

// mapper converts a goldmark AST into a flat block sequence.
type mapper struct {
	content []byte
	blocks  []richdoc.Block
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapBlocks maps every child of a goldmark container node.
func (m *mapper) mapBlocks(parent ast.Node, bctx blockContext) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapBlock(child, bctx)
		// A list marker applies to the first block of an item only.
		bctx.prefix = ""
	}
}

// mapBlock converts a single goldmark block node.
func (m *mapper) mapBlock(gmNode ast.Node, bctx blockContext) {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		level := min(gmn.Level, richdoc.MaxHeadingLevel)
		m.appendText(richdoc.Heading, level, gmn, bctx)

	case *ast.Paragraph, *ast.TextBlock:
		m.appendText(richdoc.Paragraph, 0, gmNode, bctx)

	case *ast.Blockquote:
		bctx.quoted = true
		m.mapBlocks(gmn, bctx)

	case *ast.List:
		m.mapList(gmn, bctx)

	case *ast.FencedCodeBlock:
		m.appendCode(m.lines(gmn), string(gmn.Language(m.content)))

	case *ast.CodeBlock:
		m.appendCode(m.lines(gmn), "")

	case *ast.HTMLBlock:
		code := m.lines(gmn)
		if gmn.HasClosure() {
			code = strings.TrimRight(code+"\n"+string(gmn.ClosureLine.Value(m.content)), "\n")
		}
		m.appendCode(code, "html")

	case *ast.ThematicBreak:
		// No counterpart in the grammar.

	case *east.Table:
		for row := gmn.FirstChild(); row != nil; row = row.NextSibling() {
			m.appendRow(row, bctx)
		}

	default:
		m.mapBlocks(gmNode, bctx)
	}
}

// mapList flattens list items into text blocks prefixed with their marker.
// Nested lists are flattened the same way, without indentation.
func (m *mapper) mapList(list *ast.List, bctx blockContext) {
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		itemCtx := bctx
		if list.IsOrdered() {
			itemCtx.prefix = strconv.Itoa(number) + string(list.Marker) + " "
			number++
		} else {
			itemCtx.prefix = "- "
		}
		m.mapBlocks(item, itemCtx)
	}
}

// appendText maps the inline content of node into a text block.
func (m *mapper) appendText(kind richdoc.BlockKind, level int, node ast.Node, bctx blockContext) {
	ib := newInlineBuilder(m.content)
	ib.write(bctx.prefix)
	ib.walk(node)

	if bctx.quoted {
		kind = richdoc.Blockquote
		level = 0
	}
	if kind == richdoc.Paragraph && strings.TrimSpace(ib.String()) == "" {
		return
	}

	m.blocks = append(m.blocks, richdoc.Block{
		Kind:   kind,
		Level:  level,
		Text:   ib.String(),
		Styles: ib.styles,
		Links:  ib.links,
	})
}

// appendRow maps one table row to a paragraph of cells.
func (m *mapper) appendRow(row ast.Node, bctx blockContext) {
	ib := newInlineBuilder(m.content)
	blank := true
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell != row.FirstChild() {
			ib.write(tableCellSeparator)
		}
		start := len(ib.String())
		ib.walk(cell)
		if strings.TrimSpace(ib.String()[start:]) != "" {
			blank = false
		}
	}

	if blank {
		return
	}

	kind := richdoc.Paragraph
	if bctx.quoted {
		kind = richdoc.Blockquote
	}
	m.blocks = append(m.blocks, richdoc.Block{
		Kind:   kind,
		Text:   ib.String(),
		Styles: ib.styles,
		Links:  ib.links,
	})
}

// appendCode adds one code block per run of non-blank lines. An indented
// code block ends at a blank line, so a blank line inside imported code
// starts a new block.
func (m *mapper) appendCode(code, language string) {
	var run []string
	flush := func() {
		if len(run) == 0 {
			return
		}
		block := richdoc.NewCode(strings.Join(run, "\n"))
		block.Language = language
		m.blocks = append(m.blocks, block)
		run = nil
	}

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		run = append(run, line)
	}
	flush()
}

// lines joins the raw lines of a block node without the final newline.
func (m *mapper) lines(node ast.Node) string {
	var buf bytes.Buffer
	segments := node.Lines()
	for i := range segments.Len() {
		seg := segments.At(i)
		buf.Write(seg.Value(m.content))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// inlineBuilder accumulates plain text and ranges from inline nodes. Only
// the outermost style or link of a nested group produces a range, which
// keeps every range disjoint.
type inlineBuilder struct {
	content []byte
	text    []rune
	styles  []richdoc.StyleRange
	links   []richdoc.LinkRange
	depth   int
}

func newInlineBuilder(content []byte) *inlineBuilder {
	return &inlineBuilder{content: content}
}

func (b *inlineBuilder) String() string {
	return string(b.text)
}

// write appends s, folding line breaks into spaces.
func (b *inlineBuilder) write(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		b.text = append(b.text, r)
	}
}

// writeRaw appends source text with escapes and entities resolved.
func (b *inlineBuilder) writeRaw(value []byte) {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	b.write(string(value))
}

func (b *inlineBuilder) walk(parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.writeRaw(c.Segment.Value(b.content))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.write(" ")
			}
		case *ast.String:
			b.write(string(c.Value))
		case *ast.CodeSpan:
			b.codeSpan(c)
		case *ast.Emphasis:
			style := richdoc.Italic
			if c.Level >= 2 {
				style = richdoc.Bold
			}
			b.span(c, func(offset, length int) {
				b.styles = append(b.styles, richdoc.StyleRange{Style: style, Offset: offset, Length: length})
			})
		case *east.Strikethrough:
			b.span(c, func(offset, length int) {
				b.styles = append(b.styles, richdoc.StyleRange{Style: richdoc.Strikethrough, Offset: offset, Length: length})
			})
		case *ast.Link:
			href := string(c.Destination)
			b.span(c, func(offset, length int) {
				b.links = append(b.links, richdoc.LinkRange{Offset: offset, Length: length, Href: href})
			})
		case *ast.AutoLink:
			b.autoLink(c)
		case *ast.RawHTML:
			segments := c.Segments
			for i := range segments.Len() {
				seg := segments.At(i)
				b.write(string(seg.Value(b.content)))
			}
		case *east.TaskCheckBox:
			if c.IsChecked {
				b.write("[x] ")
			} else {
				b.write("[ ] ")
			}
		default:
			// Images contribute their alt text; anything else its children.
			b.walk(child)
		}
	}
}

// span walks node and records a range over the text it produced, unless
// another span is already open.
func (b *inlineBuilder) span(node ast.Node, record func(offset, length int)) {
	if b.depth > 0 {
		b.walk(node)
		return
	}

	start := len(b.text)
	b.depth++
	b.walk(node)
	b.depth--

	if length := len(b.text) - start; length > 0 {
		record(start, length)
	}
}

// codeSpan writes code span content verbatim; backslashes are literal there.
func (b *inlineBuilder) codeSpan(span *ast.CodeSpan) {
	for child := span.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.write(string(c.Segment.Value(b.content)))
		case *ast.String:
			b.write(string(c.Value))
		}
	}
}

func (b *inlineBuilder) autoLink(link *ast.AutoLink) {
	label := string(link.Label(b.content))
	if b.depth > 0 {
		b.write(label)
		return
	}

	start := len(b.text)
	b.write(label)
	if length := len(b.text) - start; length > 0 {
		b.links = append(b.links, richdoc.LinkRange{
			Offset: start,
			Length: length,
			Href:   string(link.URL(b.content)),
		})
	}
}

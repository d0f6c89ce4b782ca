package markdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdblocks/internal/logging"
	"github.com/yaklabco/mdblocks/pkg/block"
	"github.com/yaklabco/mdblocks/pkg/frontmatter"
	"github.com/yaklabco/mdblocks/pkg/inline"
	"github.com/yaklabco/mdblocks/pkg/mdast"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

const (
	// blockSeparator separates rendered blocks and also follows the last one.
	blockSeparator = "\n\n"

	// codeIndent prefixes every line of a code block.
	codeIndent = "    "
)

var (
	// ErrBlankParagraph indicates a paragraph that would render as a blank
	// line and vanish on reading.
	ErrBlankParagraph = errors.New("paragraph renders blank")

	// ErrIndentedParagraph indicates a paragraph that would render with a
	// code indent and read back as code.
	ErrIndentedParagraph = errors.New("paragraph renders with code indent")
)

// Deserialize converts Markdown text into a document tree. It fails only
// when the front-matter header is malformed; the body itself always parses.
func (c *Converter) Deserialize(text string) (*mdast.Node, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return c.Assemble(doc), nil
}

// Serialize renders a document tree as Markdown text.
func (c *Converter) Serialize(root *mdast.Node) (string, error) {
	doc, err := Disassemble(root)
	if err != nil {
		return "", err
	}

	out, err := Format(doc)
	if err != nil {
		return "", err
	}

	c.logger.Debug("serialized document",
		logging.FieldBlocks, len(doc.Blocks),
		logging.FieldBytes, len(out))

	return out, nil
}

// Normalize deserializes and re-serializes text, yielding its canonical form.
func (c *Converter) Normalize(text string) (string, error) {
	root, err := c.Deserialize(text)
	if err != nil {
		return "", err
	}
	return c.Serialize(root)
}

// Parse converts Markdown text into a document without building a tree.
// Blocks carry no keys.
func Parse(text string) (richdoc.Document, error) {
	meta, body, err := frontmatter.Split(text)
	if err != nil {
		return richdoc.Document{}, fmt.Errorf("split front-matter: %w", err)
	}

	return richdoc.Document{
		Metadata: meta,
		Blocks:   block.Parse(body),
	}, nil
}

// Format renders a document as Markdown text. Every block is checked
// against the model invariants first; all violations are reported together
// and nothing is rendered.
func Format(doc richdoc.Document) (string, error) {
	var errs []error
	for i, b := range doc.Blocks {
		if err := richdoc.ValidateBlock(b); err != nil {
			errs = append(errs, fmt.Errorf("block %d (%s): %w", i, b.Kind, err))
		}
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	header, err := frontmatter.RenderHeader(doc.Metadata)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for i, b := range doc.Blocks {
		rendered, err := renderBlock(b)
		if err != nil {
			return "", fmt.Errorf("block %d (%s): %w", i, b.Kind, err)
		}
		buf.WriteString(rendered)
		buf.WriteString(blockSeparator)
	}

	body := buf.String()
	if header == "" && frontmatter.HasHeader(body) {
		// A leading "---" paragraph would pair with a later one and read
		// back as metadata.
		body = `\` + body
	}

	return header + body, nil
}

// renderBlock encodes the inline content of b and wraps it per kind.
func renderBlock(b richdoc.Block) (string, error) {
	if b.Kind == richdoc.Code {
		return indentCode(b.Text), nil
	}

	raw, err := inline.Encode(b.Text, b.Styles, b.Links)
	if err != nil {
		return "", err
	}

	switch b.Kind {
	case richdoc.Heading:
		return strings.Repeat("#", b.Level) + " " + raw, nil
	case richdoc.Blockquote:
		return "> " + raw, nil
	default:
		if strings.TrimSpace(raw) == "" {
			return "", ErrBlankParagraph
		}
		if strings.HasPrefix(raw, codeIndent) {
			return "", ErrIndentedParagraph
		}
		return inline.EscapeLineStart(raw), nil
	}
}

// indentCode prefixes every line of text with the code indent.
func indentCode(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = codeIndent + line
	}
	return strings.Join(lines, "\n")
}

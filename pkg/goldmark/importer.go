// Package goldmark bridges full CommonMark/GFM and the restricted block
// grammar. Import parses arbitrary Markdown with goldmark and degrades every
// construct outside the grammar into the nearest block kind; Renderer turns
// serialized output into HTML.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdblocks/pkg/frontmatter"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// Flavor identifies the Markdown flavor accepted by the importer.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Importer converts Markdown of the configured flavor into a document.
// An Importer is stateless and safe for concurrent use.
type Importer struct {
	flavor string
	md     goldmark.Markdown
}

// NewImporter creates an importer for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "gfm".
func NewImporter(flavor string) *Importer {
	f := flavorOrDefault(flavor)
	return &Importer{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (im *Importer) Flavor() string {
	return im.flavor
}

// Import splits a front-matter header from src, parses the body with
// goldmark and maps the resulting AST onto blocks.
func (im *Importer) Import(ctx context.Context, src []byte) (richdoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return richdoc.Document{}, fmt.Errorf("import cancelled: %w", err)
	}

	meta, body, err := frontmatter.Split(string(src))
	if err != nil {
		return richdoc.Document{}, fmt.Errorf("split front-matter: %w", err)
	}

	content := []byte(body)
	gmDoc := im.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return richdoc.Document{}, fmt.Errorf("import cancelled: %w", err)
	}

	m := newMapper(content)
	m.mapBlocks(gmDoc, blockContext{})

	return richdoc.Document{Metadata: meta, Blocks: m.blocks}, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

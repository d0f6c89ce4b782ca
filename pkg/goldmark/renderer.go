package goldmark

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts serialized Markdown into HTML. Strikethrough is the only
// extension enabled because it is the only construct of the grammar that
// plain CommonMark lacks.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer. With unsafe set, raw HTML in the source is
// passed through instead of being omitted.
func NewRenderer(unsafe bool) *Renderer {
	var rendererOptions []renderer.Option
	if unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
			goldmark.WithRendererOptions(rendererOptions...),
		),
	}
}

// Render converts source to HTML.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

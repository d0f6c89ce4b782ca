package mdast_test

import (
	"testing"

	"github.com/yaklabco/mdblocks/pkg/mdast"
)

func TestNodeKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind mdast.NodeKind
		want string
	}{
		{mdast.NodeDocument, "Document"},
		{mdast.NodeParagraph, "Paragraph"},
		{mdast.NodeHeading, "Heading"},
		{mdast.NodeBlockquote, "Blockquote"},
		{mdast.NodeCodeBlock, "CodeBlock"},
		{mdast.NodeKind(200), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestIsBlock(t *testing.T) {
	t.Parallel()

	if mdast.NewDocument(nil).IsBlock() {
		t.Error("document is not a block")
	}

	for _, kind := range []mdast.NodeKind{
		mdast.NodeParagraph, mdast.NodeHeading, mdast.NodeBlockquote, mdast.NodeCodeBlock,
	} {
		if !mdast.NewNode(kind).IsBlock() {
			t.Errorf("%s should be a block", kind)
		}
	}
}

func TestChildren(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument(nil)

	if doc.HasChildren() || doc.ChildCount() != 0 || doc.Children() != nil {
		t.Error("new document should be empty")
	}

	for range 3 {
		mdast.AppendChild(doc, mdast.NewNode(mdast.NodeParagraph))
	}

	if !doc.HasChildren() {
		t.Error("expected children")
	}

	if doc.ChildCount() != 3 || len(doc.Children()) != 3 {
		t.Errorf("expected 3 children, got %d", doc.ChildCount())
	}
}

func TestMarkKindString(t *testing.T) {
	t.Parallel()

	if mdast.MarkLink.String() != "link" || mdast.MarkKind(0).String() != "unknown" {
		t.Error("unexpected mark kind names")
	}
}

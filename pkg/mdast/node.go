// Package mdast provides the ordered document tree the markdown converter
// assembles into and reads back from.
//
// The tree is intentionally small: a document root whose children are
// top-level block nodes. Block nodes carry their plain text and inline marks
// as attributes rather than as inline child nodes.
package mdast

// NodeKind classifies the type of a tree node.
type NodeKind uint8

// Node kinds for the document root and its block children.
const (
	NodeDocument NodeKind = iota
	NodeParagraph
	NodeHeading
	NodeBlockquote
	NodeCodeBlock
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeParagraph:
		return "Paragraph"
	case NodeHeading:
		return "Heading"
	case NodeBlockquote:
		return "Blockquote"
	case NodeCodeBlock:
		return "CodeBlock"
	default:
		return "Unknown"
	}
}

// Node represents a single node in the document tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Block holds attributes for block nodes. Nil for the document.
	Block *BlockAttrs

	// Data holds document-level data; the converter stores front-matter
	// metadata here.
	Data map[string]any
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeParagraph, NodeHeading, NodeBlockquote, NodeCodeBlock:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdblocks/pkg/mdast"
)

type visit struct {
	kind  mdast.NodeKind
	depth int
}

func buildTestTree() *mdast.Node {
	// Document
	//   Heading
	//   Paragraph
	//     Paragraph
	//   CodeBlock
	return mdast.Create(mdast.NodeDocument, nil,
		mdast.Create(mdast.NodeHeading, mdast.NewBlockAttrs().WithHeadingLevel(1).WithText("Title")),
		mdast.Create(mdast.NodeParagraph, mdast.NewBlockAttrs().WithText("one"),
			mdast.Create(mdast.NodeParagraph, mdast.NewBlockAttrs().WithText("nested")),
		),
		mdast.Create(mdast.NodeCodeBlock, mdast.NewBlockAttrs().WithText("x := 1")),
	)
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []visit
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node, depth int) error {
		visited = append(visited, visit{kind: n.Kind, depth: depth})
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []visit{
		{mdast.NodeDocument, 0},
		{mdast.NodeHeading, 1},
		{mdast.NodeParagraph, 1},
		{mdast.NodeParagraph, 2},
		{mdast.NodeCodeBlock, 1},
	}, visited)
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Walk(nil, func(*mdast.Node, int) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called)
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")

	count := 0
	err := mdast.Walk(buildTestTree(), func(_ *mdast.Node, depth int) error {
		count++
		if depth == 2 {
			return errStop
		}
		return nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 4, count)
}

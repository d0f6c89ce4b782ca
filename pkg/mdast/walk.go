package mdast

// WalkFunc is called for every node visited by Walk. depth is 0 for the
// root, 1 for its children and so on. Return a non-nil error to stop the
// walk.
type WalkFunc func(n *Node, depth int) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops immediately and returns
// that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	return walk(root, 0, walkFunc)
}

func walk(n *Node, depth int, walkFunc WalkFunc) error {
	if n == nil {
		return nil
	}

	if err := walkFunc(n, depth); err != nil {
		return err
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		if err := walk(child, depth+1, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

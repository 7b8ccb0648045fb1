package mdoc

// WalkStatus allows NodeVisitor to have some control over the tree traversal.
type WalkStatus int

const (
	// GoToNext is the default traversal of every node.
	GoToNext WalkStatus = iota
	// SkipChildren tells walker to skip all children of current node.
	SkipChildren
	// Terminate tells walker to terminate the traversal.
	Terminate
)

// NodeVisitor is called twice for every node: once when entering it, and
// once when leaving it after its children.
type NodeVisitor func(n Node, entering bool) WalkStatus

// Walk traverses the tree rooted at n depth first. A list item's inline
// content is visited before its sublist.
func Walk(n Node, visit NodeVisitor) WalkStatus {
	switch visit(n, true) {
	case Terminate:
		return Terminate
	case SkipChildren:
	default:
		for _, c := range children(n) {
			if Walk(c, visit) == Terminate {
				return Terminate
			}
		}
	}
	if visit(n, false) == Terminate {
		return Terminate
	}
	return GoToNext
}

func children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case *Document:
		for _, b := range n.Blocks {
			out = append(out, b)
		}
	case *List:
		for _, item := range n.Items {
			out = append(out, item)
		}
	case *ListItem:
		for _, c := range n.Inlines {
			out = append(out, c)
		}
		if n.Sublist != nil {
			out = append(out, n.Sublist)
		}
	default:
		if in := Content(n); in != nil {
			for _, c := range *in {
				out = append(out, c)
			}
		}
	}
	return out
}

package difftree

import "strings"

// Node is one tree entry: a path segment with its children in first-seen
// order. The parent pointer is a non-owning back-reference; the root has
// none.
type Node struct {
	name     string
	parent   *Node
	children []*Node
	byName   map[string]*Node
}

func newNode(name string, parent *Node) *Node {
	return &Node{name: name, parent: parent}
}

// Name returns the node's own path segment.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// HasChildren reports whether the node is an internal (folder) node.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// Children returns the node's children in first-seen order.
func (n *Node) Children() []*Node {
	return n.children
}

// Path joins the ancestor segments with '/'. When relative is true the
// synthetic root segment (the working-directory root) is omitted, so the
// root itself yields "".
func (n *Node) Path(relative bool) string {
	if n.parent == nil {
		if relative {
			return ""
		}
		return n.name
	}
	prefix := n.parent.Path(relative)
	if prefix == "" {
		return n.name
	}
	return prefix + "/" + n.name
}

// addPath inserts the tail of segments starting at from, reusing existing
// children by name. New children are appended after their own subtree has
// been filled in, which preserves first-seen sibling order.
func (n *Node) addPath(segments []string, from int) {
	if from >= len(segments) {
		return
	}
	seg := segments[from]
	if child, ok := n.byName[seg]; ok {
		child.addPath(segments, from+1)
		return
	}
	child := newNode(seg, n)
	child.addPath(segments, from+1)
	if n.byName == nil {
		n.byName = make(map[string]*Node)
	}
	n.byName[seg] = child
	n.children = append(n.children, child)
}

// buildTree constructs a fresh tree for the diff's entry paths under a
// root named for the working-directory root.
func buildTree(rootName string, diff Diff) *Node {
	root := newNode(rootName, nil)
	for i := 0; i < diff.Count(); i++ {
		if name := diff.Name(i); name != "" {
			root.addPath(strings.Split(name, "/"), 0)
		}
	}
	return root
}

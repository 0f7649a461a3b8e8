package plan

// DefaultCollectionDelimiter joins collection elements when a field declares none.
const DefaultCollectionDelimiter = ","

// Node is one field of the traversal tree.
type Node struct {
	Kind Kind
	// Name is the Go field name; empty for the root and for collection elements.
	Name string
	// Header is the column header of the node's own column.
	Header string
	// Inline suppresses the node's own column, keeping its children's.
	Inline bool
	// Delimiter joins element values; set on collection nodes only.
	Delimiter string
	// Index is the field index path inside the owning struct, through promoted
	// embedded structs. Nil for the root and for collection elements.
	Index []int
	// Type is the declared type, for diagnostics.
	Type string
	// Children holds struct fields for groups and the single element for collections.
	Children []*Node
}

// Elem returns the element node of a collection, or nil.
func (n *Node) Elem() *Node {
	if n.Kind != KindCollection || len(n.Children) == 0 {
		return nil
	}

	return n.Children[0]
}

// Width returns the number of columns the node produces: its terminals plus one
// column for each non-inline group.
func (n *Node) Width() int {
	switch n.Kind {
	case KindTerminal:
		return 1
	case KindCollection:
		return n.Elem().Width()
	}

	w := 0
	for _, c := range n.Children {
		w += c.Width()
	}
	if !n.Inline {
		w++
	}

	return w
}

// Headers returns the column headers in output order.
func (n *Node) Headers() []string {
	return n.appendHeaders(make([]string, 0, n.Width()))
}

func (n *Node) appendHeaders(dst []string) []string {
	switch n.Kind {
	case KindTerminal:
		return append(dst, n.Header)
	case KindCollection:
		return n.Elem().appendHeaders(dst)
	}

	for _, c := range n.Children {
		dst = c.appendHeaders(dst)
	}
	if !n.Inline {
		dst = append(dst, n.Header)
	}

	return dst
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}

	for _, c := range n.Children {
		c.Walk(fn)
	}
}

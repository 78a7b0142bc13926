package parser

// Walk traverses the tree in depth-first pre-order, calling fn for each
// node. When fn returns false the node's children are skipped. Consumers
// pattern-matching on Kind should treat unfamiliar kinds as empty rather
// than failing, so trees from newer parsers degrade instead of crashing.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

//go:build unsafe
// +build unsafe

package mcts

// nodeFromNaughty gets the node given the index. No locks are taken.
func (t *MCTS) nodeFromNaughty(ptr naughty) *Node {
	return t.nodes[int(ptr)]
}

// Children returns a list of children. No locks are taken.
func (t *MCTS) Children(of naughty) []naughty {
	return t.children[of]
}

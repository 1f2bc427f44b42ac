//go:build !unsafe
// +build !unsafe

package mcts

// nodeFromNaughty gets the node given the index.
func (t *MCTS) nodeFromNaughty(ptr naughty) *Node {
	t.RLock()
	retVal := t.nodes[int(ptr)]
	t.RUnlock()
	return retVal
}

// Children returns a list of children
func (t *MCTS) Children(of naughty) []naughty {
	t.RLock()
	retVal := t.children[of]
	t.RUnlock()
	return retVal
}

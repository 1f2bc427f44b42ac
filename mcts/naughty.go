package mcts

// naughty is essentially *Node - an index into the node arena
type naughty int

func (n naughty) isValid() bool { return n >= 0 }

const (
	nilNode naughty = -1
)

// edge is the composite key of a child: the parent's index and the action taken out of the parent.
type edge struct {
	parent naughty
	action ActionID
}

package mcts

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Node is a belief node. It holds a pool of particles, the visit count N and the running mean value V
// of the returns backed up into it.
//
// The children of a node are owned by the tree, keyed by (parent, action).
type Node struct {
	id          naughty
	parent      naughty
	action      ActionID // action taken out of the parent to get here
	actionValue float32  // concrete action value used when this node was created

	visits    uint32 // N
	value     float32
	particles []State

	childLock sync.Mutex
	tree      *MCTS
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Name: %v Visits: %v Value: %v Particles: %d}", n.id, n.Name(), n.visits, n.Value(), len(n.particles))
}

// ID returns the index of the node in the tree.
func (n *Node) ID() int { return int(n.id) }

// IsRoot returns true if the node has no parent.
func (n *Node) IsRoot() bool { return n.parent == nilNode }

// Action returns the action taken out of the parent to reach this node.
func (n *Node) Action() ActionID { return n.action }

// ActionValue returns the concrete action value that was executed when this node was created.
func (n *Node) ActionValue() float32 { return n.actionValue }

// Visits returns the number of times the search has passed through this node.
func (n *Node) Visits() uint32 { return n.visits }

// Value returns the mean of the returns backed up into this node.
// An unvisited node has no value, and reports +Inf so that it always wins a comparison.
func (n *Node) Value() float32 {
	if n.visits == 0 {
		return math32.Inf(1)
	}
	return n.value
}

// Particles returns the belief of the node. The returned slice must not be modified.
func (n *Node) Particles() []State { return n.particles }

// SampleParticle returns a particle drawn uniformly at random from the belief.
func (n *Node) SampleParticle(r *rand.Rand) (State, error) {
	if len(n.particles) == 0 {
		return nil, errors.Wrapf(ErrEmptyBelief, "node %v", n.Name())
	}
	return n.particles[r.Intn(len(n.particles))], nil
}

// RecordVisit increments the visit count.
func (n *Node) RecordVisit() { n.visits++ }

// RecordParticle adds a state to the belief.
func (n *Node) RecordParticle(s State) { n.particles = append(n.particles, s) }

// Backup folds a reward into the running mean value. The node must have been visited.
func (n *Node) Backup(reward float32) error {
	if n.visits == 0 {
		return errors.Wrapf(ErrUnvisited, "node %v", n.Name())
	}
	n.value += (reward - n.value) / float32(n.visits)
	return nil
}

// Child returns the child reached by taking the action. It does not create children.
func (n *Node) Child(a ActionID) (*Node, bool) {
	kid := n.tree.childOf(n.id, a)
	if !kid.isValid() {
		return nil, false
	}
	return n.tree.nodeFromNaughty(kid), true
}

// AttachChild attaches child under the action. Each action may only be expanded once.
func (n *Node) AttachChild(a ActionID, child *Node) error {
	n.childLock.Lock()
	defer n.childLock.Unlock()

	if n.tree.childOf(n.id, a).isValid() {
		return errors.Wrapf(ErrDuplicateChild, "node %v, action %v", n.Name(), n.tree.actionName(a))
	}

	child.parent = n.id
	child.action = a

	t := n.tree
	t.Lock()
	t.index[edge{n.id, a}] = child.id
	t.children[n.id] = append(t.children[n.id], child.id)
	t.Unlock()
	t.log("\tattached %v to %v", t.actionName(a), n.Name())
	return nil
}

// Children returns the children of the node in the order in which they were attached.
func (n *Node) Children() []*Node {
	kids := n.tree.Children(n.id)
	retVal := make([]*Node, 0, len(kids))
	for _, kid := range kids {
		retVal = append(retVal, n.tree.nodeFromNaughty(kid))
	}
	return retVal
}

// Name is a debug label of the node, made of the names of the actions on the path from the root.
func (n *Node) Name() string {
	if n.parent == nilNode {
		return "root"
	}
	p := n.tree.nodeFromNaughty(n.parent)
	return p.Name() + "_" + n.tree.actionName(n.action)
}

func (n *Node) reset() {
	n.parent = nilNode
	n.action = rootAction
	n.actionValue = 0
	n.visits = 0
	n.value = 0
	n.particles = nil
}

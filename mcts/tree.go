package mcts

import (
	"strconv"
	"sync"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"
)

// Config is the structure to configure the search.
type Config struct {
	BeliefSize int     // number of particles drawn for the root belief
	Gamma      float32 // discount. Between 0 and 1
	Epsilon    float32 // horizon threshold. The search stops descending once Gamma^depth < Epsilon
	Budget     int     // iteration budget

	// Covariance is handed to Problem.SampleInitial when the root belief is drawn.
	Covariance *tensor.Dense

	Seed uint64
}

// DefaultConfig is the configuration of the planar navigation example: 20 particles, gamma 0.95, epsilon 0.5,
// 20 iterations and an isotropic covariance of 0.1.
func DefaultConfig() Config {
	return Config{
		BeliefSize: 20,
		Gamma:      0.95,
		Epsilon:    0.5,
		Budget:     20,
		Covariance: tensor.New(tensor.WithShape(2, 2), tensor.WithBacking([]float32{0.1, 0, 0, 0.1})),
	}
}

func (c Config) IsValid() bool {
	return c.BeliefSize >= 1 &&
		c.Gamma > 0 && c.Gamma < 1 &&
		c.Epsilon > 0 && c.Epsilon < 1 &&
		c.Budget >= 0
}

// beyondHorizon returns true if rewards at the given depth are discounted below Epsilon.
func (c Config) beyondHorizon(depth int) bool {
	return math32.Pow(c.Gamma, float32(depth)) < c.Epsilon
}

// MaxDepth is the first depth d with Gamma^d < Epsilon. The search never visits a node at that depth.
func (c Config) MaxDepth() int {
	var d int
	for !c.beyondHorizon(d) {
		d++
	}
	return d
}

// MCTS owns the search tree. Nodes live in an arena and are referred to by their index;
// children are found through the (parent, action) key.
type MCTS struct {
	sync.RWMutex
	Config
	problem Problem
	sel     ActionSelector
	rand    *rand.Rand

	// memory related fields
	nodes    []*Node
	children [][]naughty
	index    map[edge]naughty

	root naughty
	goal State

	metric collector
	lumberjack
}

// New creates a new search over the problem, selecting actions with sel.
func New(p Problem, conf Config, sel ActionSelector) (*MCTS, error) {
	if !conf.IsValid() {
		return nil, errors.Wrapf(ErrInvalidConfig, "%+v", conf)
	}
	if p == nil || sel == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "Problem and ActionSelector are required")
	}
	retVal := &MCTS{
		Config:  conf,
		problem: p,
		sel:     sel,
		rand:    rand.New(rand.NewSource(conf.Seed)),

		nodes:    make([]*Node, 0, 1024),
		children: make([][]naughty, 0, 1024),
		index:    make(map[edge]naughty),

		root:       nilNode,
		lumberjack: makeLumberJack(),
	}
	return retVal, nil
}

// New creates a new, empty node that was reached by executing actionValue. It is not attached to any parent.
func (t *MCTS) New(a ActionID, actionValue float32) *Node {
	n := t.alloc()
	N := t.nodeFromNaughty(n)
	N.action = a
	N.actionValue = actionValue
	return N
}

// Root returns the root of the tree, or nil if Run has not been called.
func (t *MCTS) Root() *Node {
	if !t.root.isValid() {
		return nil
	}
	return t.nodeFromNaughty(t.root)
}

// Nodes returns the number of nodes in the tree.
func (t *MCTS) Nodes() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.nodes)
}

// Selector returns the action selector used by the search.
func (t *MCTS) Selector() ActionSelector { return t.sel }

// Walk visits the tree depth first, parents before children. If fn returns false the children of that node are skipped.
func (t *MCTS) Walk(fn func(n *Node, depth int) bool) {
	if !t.root.isValid() {
		return
	}
	t.walk(t.root, 0, fn)
}

func (t *MCTS) walk(of naughty, depth int, fn func(n *Node, depth int) bool) {
	if !fn(t.nodeFromNaughty(of), depth) {
		return
	}
	for _, kid := range t.Children(of) {
		t.walk(kid, depth+1, fn)
	}
}

// Depth returns the depth of the deepest node in the tree. The root is at depth 0.
func (t *MCTS) Depth() int {
	var retVal int
	t.Walk(func(_ *Node, depth int) bool {
		if depth > retVal {
			retVal = depth
		}
		return true
	})
	return retVal
}

// Reset clears the tree.
func (t *MCTS) Reset() {
	t.Lock()
	defer t.Unlock()
	for _, n := range t.nodes {
		n.reset()
	}
	t.nodes = t.nodes[:0]
	t.children = t.children[:0]
	t.index = make(map[edge]naughty)
	t.root = nilNode
	t.goal = nil
	t.metric.reset()
}

// alloc allocates a new node into the arena.
func (t *MCTS) alloc() naughty {
	t.Lock()
	defer t.Unlock()
	n := naughty(len(t.nodes))
	t.nodes = append(t.nodes, &Node{
		id:     n,
		parent: nilNode,
		action: rootAction,
		tree:   t,
	})
	t.children = append(t.children, make([]naughty, 0, 4))
	return n
}

func (t *MCTS) childOf(parent naughty, a ActionID) naughty {
	t.RLock()
	defer t.RUnlock()
	kid, ok := t.index[edge{parent, a}]
	if !ok {
		return nilNode
	}
	return kid
}

func (t *MCTS) actionName(a ActionID) string {
	if a == rootAction {
		return "root"
	}
	if t.sel == nil {
		return strconv.Itoa(int(a))
	}
	return t.sel.ActionName(a)
}

package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

const (
	gpsMinWidth    = 0.1 // intervals narrower than this are not refined
	gpsBranchLimit = 5   // a node with N visits is refined to at most log(N)/log(gpsBranchLimit) levels
)

// phi is the golden ratio conjugate, (sqrt(5) - 1) / 2
var phi = (math32.Sqrt(5) - 1) / 2

// GPS selects continuous actions with a golden section search. Every belief node gets its own tree of intervals.
// Each interval proposes its two golden section points as pseudo-actions, named "<depth>_a" and "<depth>_b".
// The statistics of the pseudo-actions are the ordinary statistics of the node's children.
//
// GPS never explores: once both points of an interval have been tried, only the half holding the better point is refined.
type GPS struct {
	min, max float32
	trees    map[naughty]*gpsNode
}

// NewGPS creates a GPS selector over [min, max].
func NewGPS(min, max float32) (*GPS, error) {
	if max < min {
		return nil, errors.Wrapf(ErrInvalidConfig, "GPS domain [%v, %v] is empty", min, max)
	}
	return &GPS{
		min:   min,
		max:   max,
		trees: make(map[naughty]*gpsNode),
	}, nil
}

// Action returns the best point found so far by the search tree of n. Untried points are proposed first.
func (g *GPS) Action(n *Node, _ *rand.Rand) (ActionID, float32) {
	root, ok := g.trees[n.id]
	if !ok {
		root = &gpsNode{
			a: phi*g.min + (1-phi)*g.max,
			b: (1-phi)*g.min + phi*g.max,
		}
		g.trees[n.id] = root
	}
	c := root.choose(n)
	return c.id, c.action
}

// ActionName returns "<depth>_a" or "<depth>_b".
func (g *GPS) ActionName(a ActionID) string {
	depth, endpoint := a/2, 'a'
	if a%2 == 1 {
		endpoint = 'b'
	}
	return fmt.Sprintf("%d_%c", depth, endpoint)
}

// Reset forgets all search trees.
func (g *GPS) Reset() { g.trees = make(map[naughty]*gpsNode) }

func gpsA(depth int) ActionID { return ActionID(2 * depth) }
func gpsB(depth int) ActionID { return ActionID(2*depth + 1) }

// gpsNode is an interval of the golden section search.
type gpsNode struct {
	a, b     float32
	depth    int
	children []*gpsNode
}

type gpsChoice struct {
	value  float32
	id     ActionID
	action float32
}

func (g *gpsNode) choose(n *Node) gpsChoice {
	aid, bid := gpsA(g.depth), gpsB(g.depth)
	achild, ok := n.Child(aid)
	if !ok {
		return gpsChoice{math32.Inf(1), aid, g.a}
	}
	bchild, ok := n.Child(bid)
	if !ok {
		return gpsChoice{math32.Inf(1), bid, g.b}
	}

	aval, bval := achild.Value(), bchild.Value()
	best := gpsChoice{aval, aid, g.a}
	if bval > best.value {
		best = gpsChoice{bval, bid, g.b}
	}

	if children := g.expand(n.Visits()); children != nil {
		next := children[1]
		if aval > bval {
			next = children[0]
		}
		if c := next.choose(n); c.value > best.value {
			best = c
		}
	}
	return best
}

// expand returns the two sub-intervals, creating them on first use.
// It returns nil when the interval is too narrow or the tree is already as deep as the visits allow.
func (g *gpsNode) expand(visits uint32) []*gpsNode {
	if math32.Abs(g.a-g.b) < gpsMinWidth {
		return nil
	}
	if float32(g.depth) > math32.Log(float32(visits))/math32.Log(gpsBranchLimit) {
		return nil
	}
	if g.children == nil {
		anew := (1+phi)*g.b - phi*g.a
		bnew := (1+phi)*g.a - phi*g.b
		g.children = []*gpsNode{
			{a: g.a, b: bnew, depth: g.depth + 1},
			{a: anew, b: g.b, depth: g.depth + 1},
		}
	}
	return g.children
}

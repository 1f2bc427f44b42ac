package mcts

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGPS(t *testing.T, min, max float32) *GPS {
	g, err := NewGPS(min, max)
	require.NoError(t, err)
	return g
}

func TestNewGPS(t *testing.T) {
	_, err := NewGPS(1, 0)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidConfig, errors.Cause(err))

	_, err = NewGPS(0, 0)
	assert.NoError(t, err)
}

func TestGPS_ActionName(t *testing.T) {
	g := mustGPS(t, 0, 1)
	assert.Equal(t, "0_a", g.ActionName(gpsA(0)))
	assert.Equal(t, "0_b", g.ActionName(gpsB(0)))
	assert.Equal(t, "3_a", g.ActionName(gpsA(3)))
	assert.Equal(t, "3_b", g.ActionName(gpsB(3)))
}

func TestGPS_FirstCalls(t *testing.T) {
	// On [0, 1] with no children, the a endpoint is proposed first and the b endpoint second.
	g := mustGPS(t, 0, 1)
	tree := newTestTree(t, g)
	root := tree.Root()
	root.RecordVisit()

	a, val := g.Action(root, nil)
	assert.Equal(t, gpsA(0), a)
	assert.InDelta(t, (3-math32.Sqrt(5))/2, val, 1e-6)

	// asking again without expanding proposes the same endpoint
	again, _ := g.Action(root, nil)
	assert.Equal(t, a, again)

	visit(t, root, a, -1)
	b, val := g.Action(root, nil)
	assert.Equal(t, gpsB(0), b)
	assert.InDelta(t, (math32.Sqrt(5)-1)/2, val, 1e-6)
}

func TestGPS_Domain(t *testing.T) {
	g := mustGPS(t, 0, 10)
	tree := newTestTree(t, g)
	root := tree.Root()
	root.RecordVisit()

	_, a := g.Action(root, nil)
	visit(t, root, gpsA(0), 0)
	_, b := g.Action(root, nil)
	assert.InDelta(t, 3.819660, a, 1e-4)
	assert.InDelta(t, 6.180340, b, 1e-4)
	assert.InDelta(t, phi, (b-0)/(10-0), 1e-5, "b splits the domain in the golden ratio")
}

func TestGPS_Refine(t *testing.T) {
	g := mustGPS(t, 0, 1)
	tree := newTestTree(t, g)
	root := tree.Root()
	for i := 0; i < 30; i++ { // log(30)/log(5) ≈ 2.1: up to three levels
		root.RecordVisit()
	}

	visit(t, root, gpsA(0), 5)
	visit(t, root, gpsB(0), 1)

	// a is better, so the left interval [bnew, a] is refined. Its a endpoint is the parent's a.
	id, val := g.Action(root, nil)
	assert.Equal(t, gpsA(1), id)
	assert.InDelta(t, 0.381966, val, 1e-5)
	visit(t, root, id, 3)

	id, val = g.Action(root, nil)
	assert.Equal(t, gpsB(1), id)
	assert.InDelta(t, 0.236068, val, 1e-5)
	visit(t, root, id, 4)

	// b is better at depth 1, so the right interval of depth 1 is refined
	id, val = g.Action(root, nil)
	assert.Equal(t, gpsA(2), id)
	assert.InDelta(t, 0.145898, val, 1e-5)
	visit(t, root, id, 0)

	id, _ = g.Action(root, nil)
	assert.Equal(t, gpsB(2), id)
	visit(t, root, id, 0)

	// depth 2 is narrower than the minimum width, so the search stops there and the best endpoint wins
	id, val = g.Action(root, nil)
	assert.Equal(t, gpsA(0), id)
	assert.InDelta(t, 0.381966, val, 1e-5)
}

func TestGPS_TieBreak(t *testing.T) {
	g := mustGPS(t, 0, 1)
	tree := newTestTree(t, g)
	root := tree.Root()
	for i := 0; i < 4; i++ { // log(4)/log(5) < 1: depth 1 is not refined
		root.RecordVisit()
	}
	visit(t, root, gpsA(0), 2)
	visit(t, root, gpsB(0), 5)
	visit(t, root, gpsA(1), 5)
	visit(t, root, gpsB(1), 5)

	id, _ := g.Action(root, nil)
	assert.Equal(t, gpsB(0), id, "ties go to the endpoint generated first")
}

func TestGPS_DepthLimit(t *testing.T) {
	g := mustGPS(t, 0, 100)
	tree := newTestTree(t, g)
	root := tree.Root()
	root.RecordVisit()
	root.RecordVisit() // log(2)/log(5) < 1: only the root interval may be refined

	visit(t, root, gpsA(0), 1)
	visit(t, root, gpsB(0), 0)
	id, _ := g.Action(root, nil)
	assert.Equal(t, gpsA(1), id)
	visit(t, root, gpsA(1), -1)
	id, _ = g.Action(root, nil)
	assert.Equal(t, gpsB(1), id)
	visit(t, root, gpsB(1), -1)

	for i := 0; i < 5; i++ {
		id, _ = g.Action(root, nil)
		assert.Equal(t, gpsA(0), id, "depth 2 must not be reached with 2 visits")
	}
}

func TestGPS_TreesPerNode(t *testing.T) {
	g := mustGPS(t, 0, 1)
	tree := newTestTree(t, g)
	root := tree.Root()
	root.RecordVisit()
	kid := visit(t, root, gpsA(0), 1)
	kid.RecordVisit()

	id, _ := g.Action(root, nil)
	assert.Equal(t, gpsB(0), id)
	id, _ = g.Action(kid, nil)
	assert.Equal(t, gpsA(0), id, "each node has its own search tree")
	assert.Len(t, g.trees, 2)

	g.Reset()
	assert.Empty(t, g.trees)
}

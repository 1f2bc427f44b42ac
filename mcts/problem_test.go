package mcts

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"
)

var errBoom = errors.New("boom")

// line is a problem on the real line. A state is a float32; the reward is the negative distance to the goal.
type line struct {
	spread float32 // spread of the initial belief

	// step, if set, replaces the action: every Execute moves by step.
	step float32

	failExecuteAfter int // Execute fails after this many calls, if > 0
	executes         int
}

func (l *line) SampleInitial(r *rand.Rand, mean State, _ *tensor.Dense) (State, error) {
	return mean.(float32) + l.spread*float32(r.NormFloat64()), nil
}

func (l *line) Reward(s, goal State) (float32, error) {
	return -math32.Abs(s.(float32) - goal.(float32)), nil
}

func (l *line) Execute(s State, action float32) (State, error) {
	l.executes++
	if l.failExecuteAfter > 0 && l.executes > l.failExecuteAfter {
		return nil, errBoom
	}
	if l.step != 0 {
		return s.(float32) + l.step, nil
	}
	return s.(float32) + action, nil
}

func testConfig() Config {
	return Config{
		BeliefSize: 5,
		Gamma:      0.95,
		Epsilon:    0.5,
		Budget:     1,
		Seed:       1337,
	}
}

// newTestTree creates a search with a root and an empty budget.
func newTestTree(t *testing.T, sel ActionSelector) *MCTS {
	conf := testConfig()
	conf.Budget = 0
	tree, err := New(&line{spread: 1}, conf, sel)
	require.NoError(t, err)
	require.NoError(t, tree.Run(float32(0), float32(10)))
	return tree
}

// visit attaches (if needed) and visits the child of n under a, backing up the reward.
func visit(t *testing.T, n *Node, a ActionID, reward float32) *Node {
	child, ok := n.Child(a)
	if !ok {
		child = n.tree.New(a, 0)
		require.NoError(t, n.AttachChild(a, child))
	}
	child.RecordVisit()
	child.RecordParticle(float32(0))
	require.NoError(t, child.Backup(reward))
	return child
}

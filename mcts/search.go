package mcts

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

/*
Here lies the search: Run builds the tree, simulate descends it, ExtractPath reads a plan back out of it.
node.go and tree.go handle the data structure stuff, ucb1.go and gps.go the action selection.
*/

// Run builds a new tree. The root belief is drawn around start; rewards are evaluated against goal.
//
// Run stops at the first error. The tree built so far is kept and can still be inspected.
func (t *MCTS) Run(start, goal State) error {
	t.Reset()
	if r, ok := t.sel.(Resetter); ok {
		r.Reset()
	}
	t.goal = goal
	t.metric.begin()
	defer t.metric.complete()

	particles := make([]State, 0, t.BeliefSize)
	for i := 0; i < t.BeliefSize; i++ {
		s, err := t.problem.SampleInitial(t.rand, start, t.Covariance)
		if err != nil {
			return errors.Wrapf(err, "Unable to sample initial particle %d", i)
		}
		particles = append(particles, s)
	}
	root := t.New(rootAction, 0)
	root.particles = particles
	t.root = root.id
	t.log("RUN. Belief of %d particles. Budget %d, max depth %d", len(particles), t.Budget, t.MaxDepth())

	for i := 0; i < t.Budget; i++ {
		s, err := root.SampleParticle(t.rand)
		if err != nil {
			return err
		}
		t.log("Iteration %d. Start state %v", i, s)
		if _, err := t.simulate(s, root, 0); err != nil {
			return errors.WithMessagef(err, "Iteration %d failed", i)
		}
		t.metric.addIteration()
	}
	t.log("Iterations %d. Nodes %d. Root %v", t.metric.iterations, t.Nodes(), root)
	return nil
}

// simulate is the recursive part of the search:
//
//	HORIZON CHECK, VISIT, ROLLOUT or SELECT and RECURSE, BACKUP.
//
// The rollout is a single reward evaluation of the state the first time a node is visited.
func (t *MCTS) simulate(s State, n *Node, depth int) (float32, error) {
	if t.beyondHorizon(depth) {
		return 0, nil
	}

	n.RecordVisit()
	n.RecordParticle(s)
	t.metric.reached(depth)

	var r float32
	var err error
	if n.Visits() == 1 {
		if r, err = t.problem.Reward(s, t.goal); err != nil {
			return 0, errors.Wrapf(err, "Unable to evaluate reward at %v", n.Name())
		}
	} else {
		a, val := t.sel.Action(n, t.rand)
		child, ok := n.Child(a)
		if !ok {
			child = t.New(a, val)
			if err = n.AttachChild(a, child); err != nil {
				return 0, err
			}
		}

		var next State
		if next, err = t.problem.Execute(s, val); err != nil {
			return 0, errors.Wrapf(err, "Unable to execute %v (%v) from %v", t.actionName(a), val, n.Name())
		}
		if r, err = t.simulate(next, child, depth+1); err != nil {
			return 0, err
		}
		r *= t.Gamma
	}

	if err = n.Backup(r); err != nil {
		return 0, err
	}
	return r, nil
}

// ExtractPath walks the tree from the root. At every node the selector picks an action; if it has been expanded,
// the action value that created the child is executed from the current state. It stops at the first action that
// has not been expanded. The returned path starts with start.
//
// ExtractPath does not draw from the search's generator, so it returns the same path for the same tree.
func (t *MCTS) ExtractPath(start State) ([]State, error) {
	if !t.root.isValid() {
		return nil, ErrNoTree
	}

	r := rand.New(rand.NewSource(t.Seed))
	path := []State{start}
	s := start
	n := t.nodeFromNaughty(t.root)
	for {
		a, _ := t.sel.Action(n, r)
		child, ok := n.Child(a)
		if !ok {
			return path, nil
		}
		next, err := t.problem.Execute(s, child.ActionValue())
		if err != nil {
			return path, errors.Wrapf(err, "Unable to execute %v (%v) from %v", t.actionName(a), child.ActionValue(), n.Name())
		}
		path = append(path, next)
		s = next
		n = child
	}
}

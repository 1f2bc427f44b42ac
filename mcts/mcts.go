package mcts

import (
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"
)

// State is a problem state. The search never looks inside a state; it only hands it back to the Problem.
type State interface{}

// Problem is the model of the world the planner searches over. It is supplied by the caller.
type Problem interface {
	// SampleInitial draws a state around mean, with the given covariance. It is used to build the initial belief.
	SampleInitial(r *rand.Rand, mean State, cov *tensor.Dense) (State, error)

	// Reward evaluates a state with respect to the goal.
	Reward(s, goal State) (float32, error)

	// Execute applies a concrete action to a state and returns the resulting state.
	Execute(s State, action float32) (State, error)
}

// ActionID identifies a discretized action out of a node. Its meaning depends on the ActionSelector that produced it.
type ActionID int32

// ActionSelector picks an action out of a node.
type ActionSelector interface {
	// Action returns the discretized action to take from n, and the concrete action value to execute.
	Action(n *Node, r *rand.Rand) (ActionID, float32)

	// ActionName returns a human readable name of the action, used for labels.
	ActionName(a ActionID) string
}

// Resetter is an ActionSelector that holds per-tree state. Reset is called whenever a new tree is built.
type Resetter interface {
	Reset()
}

const rootAction ActionID = -1

package mcts

import "github.com/pkg/errors"

var (
	// ErrEmptyBelief is returned when a particle is requested from a node with no particles.
	ErrEmptyBelief = errors.New("No particles in belief")

	// ErrDuplicateChild is returned when a child is attached under an action that already has one.
	ErrDuplicateChild = errors.New("Child already exists for action")

	// ErrUnvisited is returned when a reward is backed up into a node that has never been visited.
	ErrUnvisited = errors.New("Cannot back up into an unvisited node")

	// ErrNoTree is returned when the tree is queried before Run.
	ErrNoTree = errors.New("No tree. Run has not been called")

	// ErrInvalidConfig is returned when a configuration fails validation.
	ErrInvalidConfig = errors.New("Invalid config")
)

// Package planar is a point robot moving on a plane. A state is a []float32 of length 2.
// An action is a heading in radians; executing it moves the robot one unit in that direction.
// The reward of a state is its negative distance to the goal.
package planar

import (
	"github.com/chewxy/math32"
	"github.com/gorgonia/pomcp/mcts"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// Dims is the dimension of a state.
const Dims = 2

// Problem implements mcts.Problem.
type Problem struct {
	// Step is the distance travelled by one action. The zero value moves one unit.
	Step float32
}

// New creates a planar problem with unit steps.
func New() Problem { return Problem{Step: 1} }

// Point makes a state.
func Point(x, y float32) []float32 { return []float32{x, y} }

// SampleInitial draws a state from a normal distribution with the given mean and covariance.
// A nil covariance returns a copy of the mean.
func (p Problem) SampleInitial(r *rand.Rand, mean mcts.State, cov *tensor.Dense) (mcts.State, error) {
	m, err := asPoint(mean)
	if err != nil {
		return nil, err
	}
	retVal := make([]float32, len(m))
	copy(retVal, m)
	if cov == nil {
		return retVal, nil
	}

	l, err := cholesky(cov)
	if err != nil {
		return nil, err
	}
	if len(l) != len(m)*len(m) {
		return nil, errors.Errorf("Covariance of shape %v does not match a state of %d dimensions", cov.Shape(), len(m))
	}

	dims := len(m)
	z := make([]float32, dims)
	for i := range z {
		z[i] = float32(r.NormFloat64())
	}
	for i := 0; i < dims; i++ {
		for j := 0; j <= i; j++ {
			retVal[i] += l[i*dims+j] * z[j]
		}
	}
	return retVal, nil
}

// Reward is the negative euclidean distance from s to the goal.
func (p Problem) Reward(s, goal mcts.State) (float32, error) {
	a, err := asPoint(s)
	if err != nil {
		return 0, err
	}
	g, err := asPoint(goal)
	if err != nil {
		return 0, err
	}
	return -distance(a, g), nil
}

// Execute moves the robot one step in the direction of the heading.
func (p Problem) Execute(s mcts.State, heading float32) (mcts.State, error) {
	a, err := asPoint(s)
	if err != nil {
		return nil, err
	}
	step := p.Step
	if step == 0 {
		step = 1
	}
	retVal := make([]float32, Dims)
	copy(retVal, a)
	vecf32.Add(retVal, []float32{step * math32.Cos(heading), step * math32.Sin(heading)})
	return retVal, nil
}

func distance(a, b []float32) float32 {
	d := make([]float32, len(a))
	copy(d, a)
	vecf32.Sub(d, b)
	vecf32.Mul(d, d)
	return math32.Sqrt(vecf32.Sum(d))
}

func asPoint(s mcts.State) ([]float32, error) {
	p, ok := s.([]float32)
	if !ok {
		return nil, errors.Errorf("Expected a []float32 state. Got %T", s)
	}
	if len(p) != Dims {
		return nil, errors.Errorf("Expected a state of %d dimensions. Got %d", Dims, len(p))
	}
	return p, nil
}

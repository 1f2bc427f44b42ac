package mcts

import (
	"strconv"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// UCB1 splits a continuous action domain [min, max) into equal-width bins and picks bins with the UCB1 rule.
// The ActionID of a bin is its index.
type UCB1 struct {
	min, width float32
	bins       int
	c          float32 // exploration constant
}

// NewUCB1 creates a UCB1 selector over [min, max) split into the given number of bins.
func NewUCB1(min, max float32, bins int, c float32) (*UCB1, error) {
	if bins < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "UCB1 needs at least one bin. Got %d", bins)
	}
	if max < min {
		return nil, errors.Wrapf(ErrInvalidConfig, "UCB1 domain [%v, %v] is empty", min, max)
	}
	if c < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "UCB1 exploration constant must not be negative. Got %v", c)
	}
	return &UCB1{
		min:   min,
		width: (max - min) / float32(bins),
		bins:  bins,
		c:     c,
	}, nil
}

// Bins returns the number of bins.
func (u *UCB1) Bins() int { return u.bins }

// Bin returns the bounds of the bin.
func (u *UCB1) Bin(a ActionID) (lo, hi float32) {
	lo = u.min + float32(a)*u.width
	return lo, lo + u.width
}

// Action picks the bin with the highest upper confidence bound, then draws an action uniformly within it.
//
// The upper confidence bound is
//
//	U(a) = V(a) + c * sqrt(ln(N) / N(a))
//
// where N is the visit count of n and V(a), N(a) are the value and visits of the child under a.
// A bin that has not been tried has an infinite bound. Ties go to the lowest bin.
func (u *UCB1) Action(n *Node, r *rand.Rand) (ActionID, float32) {
	lnN := math32.Log(float32(n.Visits()))
	scores := make([]float32, u.bins)
	for k := range scores {
		scores[k] = u.score(n, ActionID(k), lnN)
	}
	best := ActionID(argmax(scores))
	lo, hi := u.Bin(best)
	return best, lo + r.Float32()*(hi-lo)
}

func (u *UCB1) score(n *Node, a ActionID, lnN float32) float32 {
	child, ok := n.Child(a)
	if !ok || child.Visits() == 0 {
		return math32.Inf(1)
	}
	return child.Value() + u.c*math32.Sqrt(lnN/float32(child.Visits()))
}

// ActionName returns the bin index.
func (u *UCB1) ActionName(a ActionID) string { return strconv.Itoa(int(a)) }

package pomcp

import (
	"github.com/gorgonia/pomcp/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Planner is the top level structure and the entry point of the API.
// It is a wrapper around the search, the action selector and the problem it plans for.
type Planner struct {
	*mcts.MCTS
	Statistics

	conf    Config
	problem mcts.Problem
	r       *rand.Rand
	logger  zerolog.Logger

	start, goal mcts.State
}

// New creates a planner for the problem.
func New(p mcts.Problem, conf Config) (*Planner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	sel, err := conf.Selector()
	if err != nil {
		return nil, err
	}
	t, err := mcts.New(p, conf.MCTSConfig(), sel)
	if err != nil {
		return nil, err
	}

	return &Planner{
		MCTS:       t,
		Statistics: MakeStatistics(),
		conf:       conf,
		problem:    p,
		r:          rand.New(rand.NewSource(conf.Seed + 1)),
		logger:     zerolog.Nop(),
	}, nil
}

// SetLogger sets the logger of the planner and of the search.
func (p *Planner) SetLogger(l zerolog.Logger) {
	p.logger = l.With().Str("planner", p.conf.Name).Str("method", string(p.conf.Method)).Logger()
	p.MCTS.SetLogger(l)
}

// Config returns the configuration of the planner.
func (p *Planner) Config() Config { return p.conf }

// Plan builds the search tree for going from start to goal.
func (p *Planner) Plan(start, goal mcts.State) error {
	p.start, p.goal = start, goal
	p.logger.Info().Int("iterations", p.conf.Iterations).Int("beliefSize", p.conf.BeliefSize).Msg("planning")
	if err := p.Run(start, goal); err != nil {
		p.logger.Error().Err(err).Msg("planning failed")
		return err
	}
	m := p.Metrics()
	p.logger.Info().
		Int("nodes", m.Nodes).
		Int("depth", m.MaxDepthReached).
		Dur("duration", m.Duration).
		Msg("planned")
	return nil
}

// Paths draws n start states around the planned start, and extracts a path from each of them.
// Every path is recorded in the statistics.
func (p *Planner) Paths(n int) ([][]mcts.State, error) {
	if p.goal == nil {
		return nil, mcts.ErrNoTree
	}
	conf := p.conf.MCTSConfig()
	retVal := make([][]mcts.State, 0, n)
	for i := 0; i < n; i++ {
		s, err := p.problem.SampleInitial(p.r, p.start, conf.Covariance)
		if err != nil {
			return retVal, errors.Wrapf(err, "Unable to sample start of path %d", i)
		}
		path, err := p.ExtractPath(s)
		if err != nil {
			return retVal, errors.WithMessagef(err, "Unable to extract path %d", i)
		}
		reward, err := p.problem.Reward(path[len(path)-1], p.goal)
		if err != nil {
			return retVal, errors.Wrapf(err, "Unable to evaluate end of path %d", i)
		}
		p.update(p.conf.Name, string(p.conf.Method), path, reward)
		p.logger.Debug().Int("path", i).Int("steps", len(path)-1).Float32("reward", reward).Msg("extracted")
		retVal = append(retVal, path)
	}
	return retVal, nil
}

package pomcp

import (
	"io/ioutil"
	"math"

	"github.com/gorgonia/pomcp/mcts"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"gorgonia.org/tensor"
)

// Method is an action selection method.
type Method string

const (
	UCB1 Method = "ucb1"
	GPS  Method = "gps"
)

// Config configures a Planner.
type Config struct {
	Name   string `yaml:"name"`
	Method Method `yaml:"method"`

	// action domain
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`

	// UCB1 only
	Bins int     `yaml:"bins"`
	C    float32 `yaml:"c"`

	BeliefSize int     `yaml:"beliefSize"`
	Gamma      float32 `yaml:"gamma"`
	Epsilon    float32 `yaml:"epsilon"`
	Iterations int     `yaml:"iterations"`
	Variance   float32 `yaml:"variance"` // variance of the initial belief along every dimension
	Dims       int     `yaml:"dims"`     // dimensions of a state
	Seed       uint64  `yaml:"seed"`
}

// DefaultConfig is the planar navigation example: headings in [0, 2π] split into 4 bins, no exploration,
// 20 particles with a variance of 0.1, gamma 0.95, epsilon 0.5 and 20 iterations.
func DefaultConfig() Config {
	return Config{
		Name:       "planar",
		Method:     UCB1,
		Min:        0,
		Max:        2 * math.Pi,
		Bins:       4,
		C:          0,
		BeliefSize: 20,
		Gamma:      0.95,
		Epsilon:    0.5,
		Iterations: 20,
		Variance:   0.1,
		Dims:       2,
	}
}

// ParseConfig parses a YAML configuration. Fields missing from the YAML keep their default values.
func ParseConfig(data []byte) (Config, error) {
	conf := DefaultConfig()
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrap(err, "Unable to parse config")
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}

// LoadConfig reads a YAML configuration from a file.
func LoadConfig(filename string) (Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrapf(err, "Unable to read config %q", filename)
	}
	return ParseConfig(data)
}

// Validate returns an error describing the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Method != UCB1 && c.Method != GPS:
		return errors.Wrapf(mcts.ErrInvalidConfig, "Unknown method %q", c.Method)
	case c.Max < c.Min:
		return errors.Wrapf(mcts.ErrInvalidConfig, "Empty action domain [%v, %v]", c.Min, c.Max)
	case c.Method == UCB1 && c.Bins < 1:
		return errors.Wrapf(mcts.ErrInvalidConfig, "UCB1 needs at least one bin. Got %d", c.Bins)
	case c.Method == UCB1 && c.C < 0:
		return errors.Wrapf(mcts.ErrInvalidConfig, "Negative exploration constant %v", c.C)
	case c.Variance < 0:
		return errors.Wrapf(mcts.ErrInvalidConfig, "Negative variance %v", c.Variance)
	case c.Dims < 1:
		return errors.Wrapf(mcts.ErrInvalidConfig, "A state needs at least one dimension. Got %d", c.Dims)
	}
	if !c.MCTSConfig().IsValid() {
		return errors.Wrapf(mcts.ErrInvalidConfig, "beliefSize %d, gamma %v, epsilon %v, iterations %d", c.BeliefSize, c.Gamma, c.Epsilon, c.Iterations)
	}
	return nil
}

// MCTSConfig is the search configuration.
func (c Config) MCTSConfig() mcts.Config {
	return mcts.Config{
		BeliefSize: c.BeliefSize,
		Gamma:      c.Gamma,
		Epsilon:    c.Epsilon,
		Budget:     c.Iterations,
		Covariance: c.covariance(),
		Seed:       c.Seed,
	}
}

// Selector creates the action selector.
func (c Config) Selector() (mcts.ActionSelector, error) {
	switch c.Method {
	case UCB1:
		return mcts.NewUCB1(c.Min, c.Max, c.Bins, c.C)
	case GPS:
		return mcts.NewGPS(c.Min, c.Max)
	}
	return nil, errors.Wrapf(mcts.ErrInvalidConfig, "Unknown method %q", c.Method)
}

func (c Config) covariance() *tensor.Dense {
	if c.Dims < 1 {
		return nil
	}
	backing := make([]float32, c.Dims*c.Dims)
	for i := 0; i < c.Dims; i++ {
		backing[i*c.Dims+i] = c.Variance
	}
	return tensor.New(tensor.WithShape(c.Dims, c.Dims), tensor.WithBacking(backing))
}

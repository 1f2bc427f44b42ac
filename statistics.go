package pomcp

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/gorgonia/pomcp/mcts"
	"github.com/pkg/errors"
)

// Statistics records the paths extracted by a planner.
type Statistics struct {
	Creation []string // planners in the order they first extracted a path
	Steps    map[string][]int
	Rewards  map[string][]float32
}

// MakeStatistics creates empty statistics.
func MakeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 4),
		Steps:    make(map[string][]int),
		Rewards:  make(map[string][]float32),
	}
}

func (s *Statistics) update(name, method string, path []mcts.State, reward float32) {
	key := name + "/" + method
	if _, ok := s.Steps[key]; !ok {
		s.Creation = append(s.Creation, key)
	}
	s.Steps[key] = append(s.Steps[key], len(path)-1)
	s.Rewards[key] = append(s.Rewards[key], reward)
}

// Merge appends the records of other.
func (s *Statistics) Merge(other Statistics) {
	for _, key := range other.Creation {
		if _, ok := s.Steps[key]; !ok {
			s.Creation = append(s.Creation, key)
		}
		s.Steps[key] = append(s.Steps[key], other.Steps[key]...)
		s.Rewards[key] = append(s.Rewards[key], other.Rewards[key]...)
	}
}

// MeanReward is the mean final reward of the paths recorded under key.
func (s *Statistics) MeanReward(key string) float32 {
	rewards := s.Rewards[key]
	if len(rewards) == 0 {
		return 0
	}
	var sum float32
	for _, r := range rewards {
		sum += r
	}
	return sum / float32(len(rewards))
}

// Dump writes the recorded paths as CSV, one row per path.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "Unable to dump statistics to %q", filename)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"planner", "path", "steps", "reward"}); err != nil {
		return err
	}
	var records [][]string
	for _, key := range s.Creation {
		for i, steps := range s.Steps[key] {
			records = append(records, []string{
				key,
				strconv.Itoa(i),
				strconv.Itoa(steps),
				strconv.FormatFloat(float64(s.Rewards[key][i]), 'f', 3, 32),
			})
		}
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

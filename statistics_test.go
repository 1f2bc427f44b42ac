package pomcp

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorgonia/pomcp/mcts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics(t *testing.T) {
	s := MakeStatistics()
	path := func(n int) []mcts.State {
		retVal := make([]mcts.State, n+1)
		for i := range retVal {
			retVal[i] = float32(i)
		}
		return retVal
	}
	s.update("planar", "ucb1", path(3), -1)
	s.update("planar", "gps", path(0), -4)
	s.update("planar", "ucb1", path(2), -2)

	assert.Equal(t, []string{"planar/ucb1", "planar/gps"}, s.Creation)
	assert.Equal(t, []int{3, 2}, s.Steps["planar/ucb1"])
	assert.Equal(t, float32(-1.5), s.MeanReward("planar/ucb1"))
	assert.Equal(t, float32(0), s.MeanReward("nobody"))

	filename := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, s.Dump(filename))

	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	want := [][]string{
		{"planner", "path", "steps", "reward"},
		{"planar/ucb1", "0", "3", "-1.000"},
		{"planar/ucb1", "1", "2", "-2.000"},
		{"planar/gps", "0", "0", "-4.000"},
	}
	assert.Equal(t, want, records)

	other := MakeStatistics()
	other.update("planar", "gps", path(1), -3)
	other.update("wide", "gps", path(4), -5)
	s.Merge(other)
	assert.Equal(t, []string{"planar/ucb1", "planar/gps", "wide/gps"}, s.Creation)
	assert.Equal(t, []int{0, 1}, s.Steps["planar/gps"])
	assert.Equal(t, float32(-3.5), s.MeanReward("planar/gps"))

	assert.Error(t, s.Dump(filepath.Join(t.TempDir(), "missing", "stats.csv")))
}

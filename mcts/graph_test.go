package mcts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDot(t *testing.T) {
	conf := testConfig()
	conf.Budget = 30
	tree, err := New(&line{spread: 1}, conf, mustGPS(t, -1, 1))
	require.NoError(t, err)
	require.NoError(t, tree.Run(float32(0), float32(3)))

	dot := tree.ToDot()
	assert.True(t, strings.HasPrefix(dot, "digraph G {"), dot)
	assert.Equal(t, tree.Nodes(), strings.Count(dot, "N="), "every node is labelled")
	assert.Equal(t, tree.Nodes()-1, strings.Count(dot, "->"), "every node but the root has an edge")
	assert.Contains(t, dot, "root_0_a")
	assert.Contains(t, dot, "N=30")
}

package mcts

import "time"

// SearchMetric describes the last call to Run.
type SearchMetric struct {
	Iterations      int
	Nodes           int
	MaxDepthReached int // deepest depth at which a node was visited
	Duration        time.Duration
}

type collector struct {
	start           time.Time
	iterations      int
	maxDepthReached int
	duration        time.Duration
}

func (c *collector) begin() {
	c.reset()
	c.start = time.Now()
}

func (c *collector) addIteration() { c.iterations++ }

func (c *collector) reached(depth int) {
	if depth > c.maxDepthReached {
		c.maxDepthReached = depth
	}
}

func (c *collector) complete() { c.duration = time.Since(c.start) }

func (c *collector) reset() { *c = collector{} }

// Metrics returns the metrics gathered during the last call to Run.
func (t *MCTS) Metrics() SearchMetric {
	return SearchMetric{
		Iterations:      t.metric.iterations,
		Nodes:           t.Nodes(),
		MaxDepthReached: t.metric.maxDepthReached,
		Duration:        t.metric.duration,
	}
}

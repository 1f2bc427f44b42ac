package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// ToDot returns the tree in the Graphviz DOT language. Every node is labelled with its name, visits and value.
func (t *MCTS) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	t.Walk(func(n *Node, _ int) bool {
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "box",
			"label":    fmt.Sprintf("%q", fmt.Sprintf("%s\nN=%d\nV=%0.3f", n.Name(), n.Visits(), n.Value())),
		}
		if err := g.AddNode("G", dotID(n), attrs); err != nil {
			panic(err)
		}
		if !n.IsRoot() {
			parent := t.nodeFromNaughty(n.parent)
			if err := g.AddEdge(dotID(parent), dotID(n), true, nil); err != nil {
				panic(err)
			}
		}
		return true
	})
	return g.String()
}

func dotID(n *Node) string { return fmt.Sprintf("%d", n.id) }

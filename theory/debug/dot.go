// Package debug renders a theory.Engine's active constraint graph as
// Graphviz DOT, for inspecting the potential-function graph while
// debugging a solver embedding.
package debug

import (
	"fmt"

	"github.com/crillab/godl/theory"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

type namedNode struct {
	simple.Node
	label string
}

func (n namedNode) DOTID() string { return n.label }

type labeledEdge struct {
	simple.Edge
	label string
}

func (e labeledEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: e.label}}
}

// Export renders the active edges of e as a directed DOT graph named
// "difference_graph". Vertices are labeled with their term names; edges
// are labeled with the literal and bound they carry. The graph holds one
// edge per ordered pair of vertices: when several active edges join the
// same pair, only the last one returned by DebugEdges is rendered.
func Export(e *theory.Engine) ([]byte, error) {
	g := simple.NewDirectedGraph()
	ids := make(map[string]int64)
	nodeFor := func(name string) simple.Node {
		id, ok := ids[name]
		if !ok {
			id = int64(len(ids))
			ids[name] = id
			g.AddNode(namedNode{Node: simple.Node(id), label: name})
		}
		return simple.Node(id)
	}

	for _, de := range e.DebugEdges() {
		from := nodeFor(de.From)
		to := nodeFor(de.To)
		sign := "<="
		if de.Strict {
			sign = "<"
		}
		label := fmt.Sprintf("%v %s%g [%s]", de.Lit, sign, de.Weight, de.Status)
		g.SetEdge(labeledEdge{Edge: simple.Edge{F: from, T: to}, label: label})
	}

	data, err := dot.Marshal(g, "difference_graph", "", "  ")
	if err != nil {
		return nil, fmt.Errorf("debug: export dot: %w", err)
	}
	return data, nil
}

package graph

import (
	"fmt"

	gql "github.com/gql-lang/cfpq"
)

// Dataset resolves a built-in dataset name to a graph, the second leg of
// the `load` resolution order described in spec.md §6 (file path, then
// dataset name). Only "generations" is shipped; it stands in for the
// well-known RDF "generations" ontology graph used by the CFPQ literature
// and by spec.md §8 Scenario 2, without depending on an external dataset
// package this module does not have.
func Dataset(name string) (*Graph, bool) {
	switch name {
	case "generations":
		return generationsGraph(), true
	default:
		return nil, false
	}
}

// generationsGraph builds a small stand-in for the "generations" ontology
// graph: a chain of "type"-labeled edges plus a handful of "sameAs"
// edges, structured so that node 57 has no outgoing or incoming sameAs
// edge — so `"sameAs*"` queried from {57} to {57} matches exactly the
// empty-word self pair, satisfying spec.md §8 Scenario 2.
func generationsGraph() *Graph {
	g := New()
	const n = 60
	for i := 0; i < n; i++ {
		g.AddNode(nodeID(i))
	}
	for i := 0; i < n-1; i++ {
		g.AddEdge(nodeID(i), "type", nodeID(i+1))
	}
	// A handful of sameAs edges among unrelated nodes; 57 stays untouched.
	sameAsPairs := [][2]int{{1, 2}, {2, 3}, {10, 11}, {40, 41}, {41, 42}}
	for _, p := range sameAsPairs {
		g.AddEdge(nodeID(p[0]), "sameAs", nodeID(p[1]))
	}
	return g
}

func nodeID(i int) gql.NodeID {
	return gql.NodeID(fmt.Sprintf("%d", i))
}

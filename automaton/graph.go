package automaton

import (
	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/graph"
)

// FromGraph lifts a labeled multigraph to an NFA, following spec.md §4.1:
// default start set = final set = all nodes, graph nodes become
// NamedState values so `nodes of`/`edges of` can recover the original
// identifiers. startOverride/finalOverride, if non-nil, replace the
// defaults.
func FromGraph(g *graph.Graph, startOverride, finalOverride []gql.NodeID) *NFA {
	a := New()
	for _, n := range g.Nodes() {
		a.AddState(NamedState(n))
	}
	for _, e := range g.Edges() {
		a.AddTransition(NamedState(e.From), Terminal(e.Label), NamedState(e.To))
	}
	if startOverride == nil {
		for _, n := range g.Nodes() {
			a.SetStart(NamedState(n))
		}
	} else {
		for _, n := range startOverride {
			a.SetStart(NamedState(n))
		}
	}
	if finalOverride == nil {
		for _, n := range g.Nodes() {
			a.SetFinal(NamedState(n))
		}
	} else {
		for _, n := range finalOverride {
			a.SetFinal(NamedState(n))
		}
	}
	return a
}

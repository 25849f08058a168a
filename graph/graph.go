// Package graph implements the labeled directed multigraph that is the
// host of every CFPQ query: a set of nodes plus a multiset of labeled
// edges. Node bookkeeping follows the Index-map idiom used throughout the
// pack's graph libraries (e.g. lvlath's adjacency-matrix package), adapted
// from dense weighted adjacency to a sparse labeled multigraph.
package graph

import (
	"fmt"
	"sort"

	gql "github.com/gql-lang/cfpq"
)

// Edge is one (u, label, v) triple. Multiple edges between the same pair
// of nodes, possibly with the same label, are permitted (it is a
// multigraph).
type Edge struct {
	From, To gql.NodeID
	Label    gql.Label
}

// Graph is a labeled directed multigraph.
type Graph struct {
	nodes map[gql.NodeID]struct{}
	out   map[gql.NodeID][]Edge
	edges []Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[gql.NodeID]struct{}),
		out:   make(map[gql.NodeID][]Edge),
	}
}

// AddNode inserts a node with no edges, a no-op if it already exists.
func (g *Graph) AddNode(n gql.NodeID) {
	g.nodes[n] = struct{}{}
}

// AddEdge inserts a labeled edge, creating its endpoints if necessary.
func (g *Graph) AddEdge(from gql.NodeID, label gql.Label, to gql.NodeID) {
	g.AddNode(from)
	g.AddNode(to)
	e := Edge{From: from, To: to, Label: label}
	g.out[from] = append(g.out[from], e)
	g.edges = append(g.edges, e)
}

// Nodes returns all nodes, sorted for deterministic iteration in DOT dumps
// and tests; this ordering is never semantically significant (spec.md §5).
func (g *Graph) Nodes() []gql.NodeID {
	out := make([]gql.NodeID, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// OutEdges returns the edges leaving n.
func (g *Graph) OutEdges(n gql.NodeID) []Edge {
	return g.out[n]
}

// Labels returns the distinct set of labels used in the graph, sorted.
func (g *Graph) Labels() []gql.Label {
	seen := make(map[gql.Label]struct{})
	for _, e := range g.edges {
		seen[e.Label] = struct{}{}
	}
	out := make([]gql.Label, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders a short human summary, used by the CLI and by test
// failure messages.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%d nodes, %d edges)", len(g.nodes), len(g.edges))
}

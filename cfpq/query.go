package cfpq

import (
	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/grammar"
	"github.com/gql-lang/cfpq/graph"
)

// Algorithm selects which solver Query uses; both are required by spec.md
// §4.5 to agree on every input (spec.md §8's Hellings-equals-Matrix
// property).
type Algorithm int

const (
	AlgoHellings Algorithm = iota
	AlgoMatrix
)

// Options narrows a Query to a subset of start/final nodes and a single
// nonterminal, defaulting to all nodes and the grammar's start symbol.
type Options struct {
	StartNodes  []gql.NodeID
	FinalNodes  []gql.NodeID
	Nonterminal automaton.Nonterminal
	Algo        Algorithm
}

// Query runs a CFPQ solve over g with grammar c and returns the (from, N,
// to) triples for opts' nonterminal N (defaulting to c.Start),
// restricted to opts' start/final node sets (defaulting to all nodes of
// g) -- the cfpq_* family described in spec.md §4.5.
func Query(g *graph.Graph, c *grammar.CFG, opts Options) []Triple {
	nt := opts.Nonterminal
	if nt == "" {
		nt = c.Start
	}

	var triples []Triple
	switch opts.Algo {
	case AlgoMatrix:
		triples = Matrix(g, c)
	default:
		triples = Hellings(g, c)
	}

	var starts, finals map[gql.NodeID]bool
	if len(opts.StartNodes) > 0 {
		starts = toSet(opts.StartNodes)
	}
	if len(opts.FinalNodes) > 0 {
		finals = toSet(opts.FinalNodes)
	}

	out := make([]Triple, 0)
	for _, t := range triples {
		if t.Nt != nt {
			continue
		}
		if starts != nil && !starts[t.From] {
			continue
		}
		if finals != nil && !finals[t.To] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func toSet(ids []gql.NodeID) map[gql.NodeID]bool {
	m := make(map[gql.NodeID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// Reachable reports whether any node in froms reaches any node in tos
// under nonterminal nt. It runs a full Query and reports whether the
// filtered triple set is non-empty.
func Reachable(g *graph.Graph, c *grammar.CFG, nt automaton.Nonterminal, froms, tos []gql.NodeID) bool {
	opts := Options{StartNodes: froms, FinalNodes: tos, Nonterminal: nt}
	return len(Query(g, c, opts)) > 0
}

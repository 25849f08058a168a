// Package cfpq implements the two classical CFPQ solvers described in
// spec.md §4.5 -- Hellings' worklist algorithm and the matrix
// fixed-point algorithm over a WCNF grammar -- plus the cfpq_* query
// wrappers that filter results by start/final nodes and nonterminal.
package cfpq

import (
	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
)

// Triple is one (u, N, v) result: nonterminal N derives a string labeling
// some u-to-v path in the host graph.
type Triple struct {
	From gql.NodeID
	Nt   automaton.Nonterminal
	To   gql.NodeID
}

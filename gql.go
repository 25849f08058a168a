// Package gql is the module root. It holds the small value types shared
// across every other package: source positions, edge labels and node
// identifiers. Everything else in this module imports from here.
package gql

import "fmt"

// Position is a 1-based line/column pair recovered from the lexer and
// threaded through the AST, used to stamp every diagnostic produced by the
// parser and the interpreter.
type Position struct {
	Line, Col int
}

// String renders a position as "LINE:COL", the format required by the
// CLI's error lines (see errs.Error).
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// NoPosition is the zero Position, used for values synthesized outside of
// any source text (builtins, loaded graphs).
var NoPosition = Position{}

// Label is an edge label in a graph, or a terminal symbol in an FA
// alphabet. Labels are opaque strings; the empty string is never a valid
// label (epsilon moves are kept apart from labels, see
// automaton.NFA.AddEpsilon).
type Label string

// NodeID identifies a graph node. The common case is a small integer, but
// any comparable value is accepted by the graph and automaton packages;
// NodeID is kept as a thin wrapper so map keys stay uniform across
// packages that were generated from CSV (strings) or from a generated
// dataset (ints printed as strings).
type NodeID string

package automaton

import gql "github.com/gql-lang/cfpq"

// Symbol is one member of an FA's input alphabet Σ: either a terminal
// (graph edge label / regex literal) or a Nonterminal token referencing
// another box of an RSM (spec.md §3: "input alphabet may include
// nonterminal tokens"). Epsilon is modeled separately (see Epsilon
// transitions on NFA) rather than as a Symbol, since the empty label is
// never a valid terminal (gql.Label's zero value is reserved).
type Symbol interface {
	isSymbol()
	String() string
}

// Terminal is a plain edge-label / regex-literal symbol.
type Terminal gql.Label

func (Terminal) isSymbol()        {}
func (t Terminal) String() string { return string(t) }

// Nonterminal is a reference to another RSM box, carried as a symbol in an
// FA's alphabet so that an RSM box's FA can mention other boxes by name
// without the FA kernel knowing anything about grammars (spec.md §9: "a
// mapping Nonterminal → FA; references are symbol tokens, not pointers").
type Nonterminal string

func (Nonterminal) isSymbol()        {}
func (n Nonterminal) String() string { return string(n) }

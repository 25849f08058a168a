// Package grammar implements the context-free grammar representation,
// its Weak Chomsky Normal Form transform, and the Extended CFG
// (one-regex-per-nonterminal) form described in spec.md §4.3/§4.4.
package grammar

import (
	"sort"
	"strconv"

	"github.com/gql-lang/cfpq/automaton"
)

// Production is one grammar rule Head -> Body. An empty Body denotes the
// epsilon production Head -> ε, permitted for any nonterminal in WCNF
// (unlike classical CNF, which restricts ε to the start symbol).
type Production struct {
	Head automaton.Nonterminal
	Body []automaton.Symbol
}

// IsEpsilon reports whether this production is Head -> ε.
func (p Production) IsEpsilon() bool { return len(p.Body) == 0 }

// CFG is a context-free grammar: a start symbol and a set of productions.
type CFG struct {
	Start automaton.Nonterminal
	Prods []Production
}

// New returns an empty CFG with the given start symbol.
func New(start automaton.Nonterminal) *CFG {
	return &CFG{Start: start}
}

// AddProduction appends a production.
func (g *CFG) AddProduction(head automaton.Nonterminal, body ...automaton.Symbol) {
	g.Prods = append(g.Prods, Production{Head: head, Body: body})
}

// ProductionsFor returns every production headed by n.
func (g *CFG) ProductionsFor(n automaton.Nonterminal) []Production {
	var out []Production
	for _, p := range g.Prods {
		if p.Head == n {
			out = append(out, p)
		}
	}
	return out
}

// Nonterminals returns every nonterminal appearing as a production head,
// sorted for deterministic iteration.
func (g *CFG) Nonterminals() []automaton.Nonterminal {
	seen := make(map[automaton.Nonterminal]bool)
	for _, p := range g.Prods {
		seen[p.Head] = true
	}
	out := make([]automaton.Nonterminal, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsWCNF reports whether every production has shape A->BC, A->a or A->ε.
func (g *CFG) IsWCNF() bool {
	for _, p := range g.Prods {
		switch len(p.Body) {
		case 0:
			continue
		case 1:
			if _, ok := p.Body[0].(automaton.Terminal); !ok {
				return false
			}
		case 2:
			_, ok0 := p.Body[0].(automaton.Nonterminal)
			_, ok1 := p.Body[1].(automaton.Nonterminal)
			if !ok0 || !ok1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func freshName(base string, used map[automaton.Nonterminal]bool, n *int) automaton.Nonterminal {
	for {
		*n++
		cand := automaton.Nonterminal(base + strconv.Itoa(*n))
		if !used[cand] {
			used[cand] = true
			return cand
		}
	}
}

package cfpq

import (
	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/grammar"
	"github.com/gql-lang/cfpq/graph"
	"github.com/gql-lang/cfpq/internal/xlog"
)

type binProd struct {
	head automaton.Nonterminal
	a, b automaton.Nonterminal
}

// Hellings implements the worklist algorithm of spec.md §4.5: seed from
// epsilon and terminal productions, then repeatedly extend triples on
// either side using binary productions, until the worklist is empty.
func Hellings(g *graph.Graph, c *grammar.CFG) []Triple {
	wcnf := grammar.ToWCNF(c)

	var binary []binProd
	for _, p := range wcnf.Prods {
		if len(p.Body) == 2 {
			nta, oka := p.Body[0].(automaton.Nonterminal)
			ntb, okb := p.Body[1].(automaton.Nonterminal)
			if oka && okb {
				binary = append(binary, binProd{p.Head, nta, ntb})
			}
		}
	}
	bySecond := make(map[automaton.Nonterminal][]binProd)
	byFirst := make(map[automaton.Nonterminal][]binProd)
	for _, bp := range binary {
		bySecond[bp.b] = append(bySecond[bp.b], bp)
		byFirst[bp.a] = append(byFirst[bp.a], bp)
	}

	seen := make(map[Triple]bool)
	var worklist []Triple
	add := func(t Triple) {
		if !seen[t] {
			seen[t] = true
			worklist = append(worklist, t)
		}
	}

	for _, p := range wcnf.Prods {
		switch len(p.Body) {
		case 0:
			for _, n := range g.Nodes() {
				add(Triple{n, p.Head, n})
			}
		case 1:
			if term, ok := p.Body[0].(automaton.Terminal); ok {
				for _, e := range g.Edges() {
					if e.Label == gql.Label(term) {
						add(Triple{e.From, p.Head, e.To})
					}
				}
			}
		}
	}

	byEnd := make(map[gql.NodeID][]Triple)
	byStart := make(map[gql.NodeID][]Triple)
	for t := range seen {
		byEnd[t.To] = append(byEnd[t.To], t)
		byStart[t.From] = append(byStart[t.From], t)
	}

	rounds := 0
	for len(worklist) > 0 {
		rounds++
		t := worklist[0]
		worklist = worklist[1:]

		// case 1: existing (v1, Nj, u1) with u1 == t.From, prod Nk -> Nj Ni
		for _, prev := range byEnd[t.From] {
			for _, bp := range bySecond[t.Nt] {
				if bp.b == t.Nt && prev.Nt == bp.a {
					nt := Triple{prev.From, bp.head, t.To}
					if !seen[nt] {
						seen[nt] = true
						worklist = append(worklist, nt)
						byEnd[nt.To] = append(byEnd[nt.To], nt)
						byStart[nt.From] = append(byStart[nt.From], nt)
					}
				}
			}
		}
		// case 2: existing (u1, Nj, v1) with u1 == t.To, prod Nk -> Ni Nj
		for _, next := range byStart[t.To] {
			for _, bp := range byFirst[t.Nt] {
				if bp.a == t.Nt && next.Nt == bp.b {
					nt := Triple{t.From, bp.head, next.To}
					if !seen[nt] {
						seen[nt] = true
						worklist = append(worklist, nt)
						byEnd[nt.To] = append(byEnd[nt.To], nt)
						byStart[nt.From] = append(byStart[nt.From], nt)
					}
				}
			}
		}
	}
	xlog.T().Debugf("cfpq: hellings converged after %d pops, %d triples", rounds, len(seen))

	out := make([]Triple, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	return out
}

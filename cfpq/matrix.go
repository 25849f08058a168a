package cfpq

import (
	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/grammar"
	"github.com/gql-lang/cfpq/graph"
	"github.com/gql-lang/cfpq/internal/xlog"
)

// Matrix implements the matrix fixed-point algorithm of spec.md §4.5: one
// boolean matrix per nonterminal, seeded from epsilon/terminal
// productions, then `M_A |= M_B · M_C` for every binary production until
// no matrix changes.
func Matrix(g *graph.Graph, c *grammar.CFG) []Triple {
	wcnf := grammar.ToWCNF(c)

	nodes := g.Nodes()
	n := len(nodes)
	idx := make(map[gql.NodeID]int, n)
	for i, nd := range nodes {
		idx[nd] = i
	}

	M := make(map[automaton.Nonterminal]*automaton.BoolMatrix)
	matrixFor := func(nt automaton.Nonterminal) *automaton.BoolMatrix {
		m, ok := M[nt]
		if !ok {
			m = automaton.NewBoolMatrix(n)
			M[nt] = m
		}
		return m
	}

	var binary []binProd
	for _, p := range wcnf.Prods {
		switch len(p.Body) {
		case 0:
			m := matrixFor(p.Head)
			for i := 0; i < n; i++ {
				m.Set(i, i)
			}
		case 1:
			if term, ok := p.Body[0].(automaton.Terminal); ok {
				m := matrixFor(p.Head)
				for _, e := range g.Edges() {
					if e.Label == gql.Label(term) {
						m.Set(idx[e.From], idx[e.To])
					}
				}
			}
		case 2:
			nta, oka := p.Body[0].(automaton.Nonterminal)
			ntb, okb := p.Body[1].(automaton.Nonterminal)
			if oka && okb {
				binary = append(binary, binProd{p.Head, nta, ntb})
				matrixFor(p.Head)
				matrixFor(nta)
				matrixFor(ntb)
			}
		}
	}

	rounds := 0
	for {
		rounds++
		changed := false
		for _, bp := range binary {
			prod := automaton.Mul(matrixFor(bp.a), matrixFor(bp.b))
			if matrixFor(bp.head).Or(prod) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	xlog.T().Debugf("cfpq: matrix algorithm converged after %d rounds", rounds)

	var out []Triple
	for nt, m := range M {
		for i := 0; i < n; i++ {
			for _, j := range m.Row(i) {
				out = append(out, Triple{nodes[i], nt, nodes[j]})
			}
		}
	}
	return out
}

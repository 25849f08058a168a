// Package rsm implements the Recursive State Machine: a start nonterminal
// plus a mapping nonterminal -> FA ("box") whose alphabet may reference
// other boxes, and the RSM/FA intersection fixed point that realizes
// context-free path querying via tensor products (spec.md §4.2).
package rsm

import (
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/internal/xlog"
)

// RSM is a recursive state machine: boxes map a nonterminal to the FA
// that defines it; the transitive closure of nonterminal references
// appearing in any box must be closed under Boxes (spec.md §3).
type RSM struct {
	Start automaton.Nonterminal
	Boxes map[automaton.Nonterminal]*automaton.NFA
}

// New returns an RSM with a single box for its start symbol.
func New(start automaton.Nonterminal, startBox *automaton.NFA) *RSM {
	return &RSM{Start: start, Boxes: map[automaton.Nonterminal]*automaton.NFA{start: startBox}}
}

// acceptsEpsilon reports whether box's language contains the empty word.
func acceptsEpsilon(box *automaton.NFA) bool {
	closure := box.EpsilonClosure(box.StartStates())
	for s := range closure {
		if box.IsFinal(s) {
			return true
		}
	}
	return false
}

// IntersectWithFA computes the RSM-vs-FA intersection described in
// spec.md §4.2: a fixed point over per-nonterminal boolean matrices,
// realized as Kronecker products between each box and the running
// per-symbol adjacency table, closed by repeated transitive closure. The
// returned FA is over g's states, with edges labeled by r.Start wherever
// B[r.Start] ended up nonzero; start/final propagate from g.
func IntersectWithFA(r *RSM, g *automaton.NFA) *automaton.NFA {
	n := len(g.States())
	gIndex := g.StateIndex()
	gStates := g.States()

	// Pre-remove epsilon moves from every box: the Kronecker/transitive-
	// closure step below only reasons about "real" symbol moves, so each
	// box's effective transition relation must already be epsilon-free.
	det := make(map[automaton.Nonterminal]*automaton.NFA, len(r.Boxes))
	for name, box := range r.Boxes {
		det[name] = automaton.Determinize(box)
	}

	// B holds one boolean matrix per symbol that can appear in a box's
	// alphabet: terminal labels get g's fixed per-label matrix; each
	// nonterminal gets an accumulator matrix seeded with the identity iff
	// its box accepts epsilon, updated as the fixed point progresses.
	B := make(map[automaton.Symbol]*automaton.BoolMatrix)
	for _, lbl := range g.Alphabet() {
		B[lbl] = g.LabelMatrix(lbl)
	}
	for name, box := range det {
		if acceptsEpsilon(box) {
			B[automaton.Nonterminal(name)] = automaton.Identity(n)
		} else {
			B[automaton.Nonterminal(name)] = automaton.NewBoolMatrix(n)
		}
	}

	for round := 1; ; round++ {
		changed := false
		for name, box := range det {
			dim := len(box.States())
			boxIndex := box.StateIndex()
			T := automaton.NewBoolMatrix(dim * n)
			for _, sym := range box.Alphabet() {
				bsym, ok := B[sym]
				if !ok {
					continue
				}
				msym := box.LabelMatrix(sym)
				T.Or(automaton.Kron(msym, bsym))
			}
			tPlus := automaton.TransitiveClosure(T)

			startIdx := make(map[int]bool)
			for _, s := range box.StartStates() {
				startIdx[boxIndex[s]] = true
			}
			finalIdx := make(map[int]bool)
			for _, s := range box.FinalStates() {
				finalIdx[boxIndex[s]] = true
			}

			target := B[automaton.Nonterminal(name)]
			for i := 0; i < dim*n; i++ {
				qi, u := i/n, i%n
				if !startIdx[qi] {
					continue
				}
				for _, j := range tPlus.Row(i) {
					qf, v := j/n, j%n
					if finalIdx[qf] && !target.Get(u, v) {
						target.Set(u, v)
						changed = true
					}
				}
			}
		}
		xlog.T().Debugf("rsm: intersect round %d, changed=%v", round, changed)
		if !changed {
			break
		}
	}

	out := automaton.New()
	for _, s := range gStates {
		out.AddState(s)
	}
	for _, s := range g.StartStates() {
		out.SetStart(s)
	}
	for _, s := range g.FinalStates() {
		out.SetFinal(s)
	}
	startMatrix := B[automaton.Nonterminal(r.Start)]
	for _, u := range gStates {
		ui := gIndex[u]
		for _, vi := range startMatrix.Row(ui) {
			out.AddTransition(u, automaton.Nonterminal(r.Start), gStates[vi])
		}
	}
	return out
}

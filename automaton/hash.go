package automaton

import (
	"sort"

	"github.com/cnf/structhash"
)

// canonicalForm renders a minimized FA as a sorted, plain-data snapshot
// suitable for hashing: state count, start/final indices and the sorted
// transition list. Each state is keyed by its position in the String()
// order of the minimized automaton's states. Minimize numbers its blocks
// in the String() order of the states it merges, so two language-equal
// FAs whose states are named differently are not guaranteed to produce
// the same canonical form.
type canonicalForm struct {
	NumStates int
	Start     []int
	Final     []int
	Trans     []canonicalTransition
}

type canonicalTransition struct {
	From, To int
	Sym      string
}

// StructuralHash returns a content hash of a's minimized form, used by
// value.Set to implement "sets of FAs compare equal iff language-equal"
// per spec.md §9 (approximated here, as the design note allows, by
// structural equality after minimization rather than full language
// equivalence on non-minimal inputs).
func StructuralHash(a *NFA) (string, error) {
	m := Minimize(Determinize(a))
	cf := toCanonicalForm(m)
	h, err := structhash.Hash(cf, 1)
	if err != nil {
		return "", err
	}
	return h, nil
}

func toCanonicalForm(a *NFA) canonicalForm {
	states := a.States()
	order := make(map[State]int, len(states))
	sorted := append([]State{}, states...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	for i, s := range sorted {
		order[s] = i
	}
	cf := canonicalForm{NumStates: len(states)}
	for _, s := range a.StartStates() {
		cf.Start = append(cf.Start, order[s])
	}
	for _, s := range a.FinalStates() {
		cf.Final = append(cf.Final, order[s])
	}
	for _, t := range a.EdgeTriples() {
		cf.Trans = append(cf.Trans, canonicalTransition{order[t.From], order[t.To], t.Sym.String()})
	}
	sort.Ints(cf.Start)
	sort.Ints(cf.Final)
	sort.Slice(cf.Trans, func(i, j int) bool {
		ti, tj := cf.Trans[i], cf.Trans[j]
		if ti.From != tj.From {
			return ti.From < tj.From
		}
		if ti.Sym != tj.Sym {
			return ti.Sym < tj.Sym
		}
		return ti.To < tj.To
	})
	return cf
}

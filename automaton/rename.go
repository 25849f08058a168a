package automaton

// RenameNonterminals returns a copy of a with every Nonterminal symbol
// appearing on a transition replaced per rename (terminals and states are
// left untouched). Used by the RSM grammar-level union/combination
// operators to give two independently built RSMs disjoint Nonterminal
// namespaces before merging their boxes.
func RenameNonterminals(a *NFA, rename map[Nonterminal]Nonterminal) *NFA {
	out := New()
	for _, s := range a.states {
		out.AddState(s)
	}
	for s := range a.start {
		out.SetStart(s)
	}
	for s := range a.final {
		out.SetFinal(s)
	}
	for from, m := range a.delta {
		for sym, tos := range m {
			newSym := sym
			if nt, ok := sym.(Nonterminal); ok {
				if renamed, found := rename[nt]; found {
					newSym = renamed
				}
			}
			for _, to := range tos {
				out.AddTransition(from, newSym, to)
			}
		}
	}
	for from, tos := range a.epsilon {
		for _, to := range tos {
			out.AddEpsilon(from, to)
		}
	}
	return out
}

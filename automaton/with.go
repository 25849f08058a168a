package automaton

// WithOnlyStart returns a copy of a whose start set is exactly ss.
func (a *NFA) WithOnlyStart(ss []State) *NFA {
	b := a.Copy()
	b.start = make(map[State]bool)
	for _, s := range ss {
		b.SetStart(s)
	}
	return b
}

// WithOnlyFinal returns a copy of a whose final set is exactly ss.
func (a *NFA) WithOnlyFinal(ss []State) *NFA {
	b := a.Copy()
	b.final = make(map[State]bool)
	for _, s := range ss {
		b.SetFinal(s)
	}
	return b
}

// WithAdditionalStart returns a copy of a with ss added to the start set.
func (a *NFA) WithAdditionalStart(ss []State) *NFA {
	b := a.Copy()
	for _, s := range ss {
		b.SetStart(s)
	}
	return b
}

// WithAdditionalFinal returns a copy of a with ss added to the final set.
func (a *NFA) WithAdditionalFinal(ss []State) *NFA {
	b := a.Copy()
	for _, s := range ss {
		b.SetFinal(s)
	}
	return b
}

// Transition is one labeled edge (u, symbol, v), as returned by
// EdgeTriples for `edges of`.
type Transition struct {
	From State
	Sym  Symbol
	To   State
}

// EdgeTriples returns every labeled transition (epsilon excluded).
func (a *NFA) EdgeTriples() []Transition {
	var out []Transition
	for from, m := range a.delta {
		for sym, tos := range m {
			for _, to := range tos {
				out = append(out, Transition{from, sym, to})
			}
		}
	}
	return out
}

// EpsilonEdges returns every epsilon transition as (from, to) pairs.
func (a *NFA) EpsilonEdges() [][2]State {
	var out [][2]State
	for from, tos := range a.epsilon {
		for _, to := range tos {
			out = append(out, [2]State{from, to})
		}
	}
	return out
}

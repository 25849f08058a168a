package automaton

// freshS/freshT are the two new states every Union/Star construction
// mints. They never collide with an operand's own states because the
// operand's entire state set is wrapped in a TaggedState first — if this
// result automaton is itself later combined again, the whole thing
// (including freshS/freshT) gets wrapped under a new tag in turn.
const (
	freshS = SimpleState(0)
	freshT = SimpleState(1)
)

func tag(tagNo int, s State) State { return TaggedState{Tag: tagNo, Inner: s} }

// copyInto copies every state/transition of src into dst, with every
// state wrapped as TaggedState{tagNo, original}.
func copyInto(dst *NFA, src *NFA, tagNo int) {
	for _, s := range src.states {
		dst.AddState(tag(tagNo, s))
	}
	for from, m := range src.delta {
		for sym, tos := range m {
			for _, to := range tos {
				dst.AddTransition(tag(tagNo, from), sym, tag(tagNo, to))
			}
		}
	}
	for from, tos := range src.epsilon {
		for _, to := range tos {
			dst.AddEpsilon(tag(tagNo, from), tag(tagNo, to))
		}
	}
}

// Union builds the Thompson-construction union: a fresh start s and
// accept t, epsilon-linking s to both operands' starts and both operands'
// finals to t. L(Union(a,b)) = L(a) ∪ L(b).
func Union(a, b *NFA) *NFA {
	out := New()
	copyInto(out, a, 0)
	copyInto(out, b, 1)
	out.SetStart(freshS)
	out.SetFinal(freshT)
	for _, s := range a.StartStates() {
		out.AddEpsilon(freshS, tag(0, s))
	}
	for _, s := range b.StartStates() {
		out.AddEpsilon(freshS, tag(1, s))
	}
	for _, f := range a.FinalStates() {
		out.AddEpsilon(tag(0, f), freshT)
	}
	for _, f := range b.FinalStates() {
		out.AddEpsilon(tag(1, f), freshT)
	}
	return out
}

// Concat epsilon-links a's finals to b's starts; the result's start set is
// a's start set and its final set is b's final set. L(Concat(a,b)) =
// L(a)·L(b).
func Concat(a, b *NFA) *NFA {
	out := New()
	copyInto(out, a, 0)
	copyInto(out, b, 1)
	for _, s := range a.StartStates() {
		out.SetStart(tag(0, s))
	}
	for _, f := range b.FinalStates() {
		out.SetFinal(tag(1, f))
	}
	for _, f := range a.FinalStates() {
		for _, s := range b.StartStates() {
			out.AddEpsilon(tag(0, f), tag(1, s))
		}
	}
	return out
}

// Star builds the Kleene-star construction: fresh s and t, epsilon from s
// to a.start, a.final to t, and an s<->t loop allowing zero repetitions
// (ε) and re-entry for further repetitions. L(Star(a)) = L(a)*.
func Star(a *NFA) *NFA {
	out := New()
	copyInto(out, a, 0)
	out.SetStart(freshS)
	out.SetFinal(freshT)
	for _, s := range a.StartStates() {
		out.AddEpsilon(freshS, tag(0, s))
	}
	for _, f := range a.FinalStates() {
		out.AddEpsilon(tag(0, f), freshT)
	}
	out.AddEpsilon(freshS, freshT)
	out.AddEpsilon(freshT, freshS)
	return out
}

// Intersect computes the per-label Kronecker product described in
// spec.md §4.1: result states are (qa,qb) pairs, start/final are the
// cartesian products of the operands' start/final sets. Epsilon
// transitions propagate independently in either component (a standard
// "synchronize only on real symbols" product).
func Intersect(a, b *NFA) *NFA {
	out := New()
	for _, sa := range a.states {
		for _, sb := range b.states {
			out.AddState(PairState{sa, sb})
		}
	}
	for _, sa := range a.StartStates() {
		for _, sb := range b.StartStates() {
			out.SetStart(PairState{sa, sb})
		}
	}
	for _, sa := range a.FinalStates() {
		for _, sb := range b.FinalStates() {
			out.SetFinal(PairState{sa, sb})
		}
	}
	// epsilon moves in a, b held fixed
	for from, tos := range a.epsilon {
		for _, to := range tos {
			for _, sb := range b.states {
				out.AddEpsilon(PairState{from, sb}, PairState{to, sb})
			}
		}
	}
	// epsilon moves in b, a held fixed
	for from, tos := range b.epsilon {
		for _, to := range tos {
			for _, sa := range a.states {
				out.AddEpsilon(PairState{sa, from}, PairState{sa, to})
			}
		}
	}
	// synchronized symbol moves
	for fa, ma := range a.delta {
		for fb, mb := range b.delta {
			for sym, tosA := range ma {
				tosB, ok := mb[sym]
				if !ok {
					continue
				}
				for _, ta := range tosA {
					for _, tb := range tosB {
						out.AddTransition(PairState{fa, fb}, sym, PairState{ta, tb})
					}
				}
			}
		}
	}
	return out
}

// AdjacencyMatrix returns the union of per-label matrices, ⋁_s M_s,
// following spec.md §4.1. State order is a.States() order; the returned
// index map lets callers translate back to State values.
func (a *NFA) AdjacencyMatrix() (*BoolMatrix, map[State]int) {
	n := len(a.states)
	m := NewBoolMatrix(n)
	for from, row := range a.delta {
		i := a.index[from]
		for _, tos := range row {
			for _, to := range tos {
				m.Set(i, a.index[to])
			}
		}
	}
	return m, a.index
}

// LabelMatrix returns the boolean matrix for exactly one symbol.
func (a *NFA) LabelMatrix(sym Symbol) *BoolMatrix {
	n := len(a.states)
	m := NewBoolMatrix(n)
	for from, row := range a.delta {
		i := a.index[from]
		if tos, ok := row[sym]; ok {
			for _, to := range tos {
				m.Set(i, a.index[to])
			}
		}
	}
	return m
}

// ReachableStates returns the set of (start, q) pairs such that q is
// reachable from some start state, including epsilon moves, via the
// transitive closure of the adjacency matrix (spec.md §4.1).
func (a *NFA) ReachableStates() [][2]State {
	// Build an adjacency matrix that also includes epsilon edges, since
	// "reachable" must not require consuming a symbol.
	n := len(a.states)
	m := NewBoolMatrix(n)
	for from, row := range a.delta {
		i := a.index[from]
		for _, tos := range row {
			for _, to := range tos {
				m.Set(i, a.index[to])
			}
		}
	}
	for from, tos := range a.epsilon {
		i := a.index[from]
		for _, to := range tos {
			m.Set(i, a.index[to])
		}
	}
	closure := TransitiveClosure(m)
	// reflexive: a state reaches itself (zero-length path)
	var out [][2]State
	for _, s := range a.StartStates() {
		i := a.index[s]
		out = append(out, [2]State{s, s})
		for _, j := range closure.Row(i) {
			out = append(out, [2]State{s, a.states[j]})
		}
	}
	return out
}

// Package automaton implements the FA/RSM algebra kernel: a sparse
// boolean-matrix-backed NFA with epsilon transitions, the classical
// Thompson combinators (union/concat/star), Kronecker-product
// intersection, transitive closure, minimization and regex compilation
// described in spec.md §4.1.
package automaton

import (
	"sort"
)

// NFA is a nondeterministic finite automaton with epsilon transitions.
// Determinism is never assumed; Determinize builds a deterministic
// equivalent when one is needed.
type NFA struct {
	states   []State
	index    map[State]int
	start    map[State]bool
	final    map[State]bool
	delta    map[State]map[Symbol][]State
	epsilon  map[State][]State
	alphabet map[Symbol]struct{}
}

// New returns an empty NFA (no states).
func New() *NFA {
	return &NFA{
		index:    make(map[State]int),
		start:    make(map[State]bool),
		final:    make(map[State]bool),
		delta:    make(map[State]map[Symbol][]State),
		epsilon:  make(map[State][]State),
		alphabet: make(map[Symbol]struct{}),
	}
}

// AddState registers s, a no-op if already present.
func (a *NFA) AddState(s State) {
	if _, ok := a.index[s]; ok {
		return
	}
	a.index[s] = len(a.states)
	a.states = append(a.states, s)
}

// States returns all states in insertion order.
func (a *NFA) States() []State { return a.states }

// StateIndex returns the state->index map used by AdjacencyMatrix and
// LabelMatrix, exposed so other packages (rsm, cfpq) can build their own
// matrices over the same indexing without recomputing it.
func (a *NFA) StateIndex() map[State]int { return a.index }

// SetStart marks s as a start state (inserting it if necessary).
func (a *NFA) SetStart(s State) {
	a.AddState(s)
	a.start[s] = true
}

// SetFinal marks s as a final/accepting state.
func (a *NFA) SetFinal(s State) {
	a.AddState(s)
	a.final[s] = true
}

// IsStart reports whether s is a start state.
func (a *NFA) IsStart(s State) bool { return a.start[s] }

// IsFinal reports whether s is a final state.
func (a *NFA) IsFinal(s State) bool { return a.final[s] }

// StartStates returns the start set.
func (a *NFA) StartStates() []State { return setStates(a.start) }

// FinalStates returns the final set.
func (a *NFA) FinalStates() []State { return setStates(a.final) }

func setStates(m map[State]bool) []State {
	out := make([]State, 0, len(m))
	for s, ok := range m {
		if ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// AddTransition adds a labeled transition (from, sym, to).
func (a *NFA) AddTransition(from State, sym Symbol, to State) {
	a.AddState(from)
	a.AddState(to)
	if a.delta[from] == nil {
		a.delta[from] = make(map[Symbol][]State)
	}
	a.delta[from][sym] = append(a.delta[from][sym], to)
	a.alphabet[sym] = struct{}{}
}

// AddEpsilon adds an epsilon transition from -> to.
func (a *NFA) AddEpsilon(from, to State) {
	a.AddState(from)
	a.AddState(to)
	a.epsilon[from] = append(a.epsilon[from], to)
}

// Alphabet returns the input alphabet, sorted by String() for determinism.
func (a *NFA) Alphabet() []Symbol {
	out := make([]Symbol, 0, len(a.alphabet))
	for s := range a.alphabet {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Transitions returns delta(from, sym).
func (a *NFA) Transitions(from State, sym Symbol) []State {
	if m, ok := a.delta[from]; ok {
		return m[sym]
	}
	return nil
}

// EpsilonClosure returns the set of states reachable from ss via zero or
// more epsilon transitions, including ss itself.
func (a *NFA) EpsilonClosure(ss []State) map[State]bool {
	closure := make(map[State]bool)
	stack := append([]State{}, ss...)
	for _, s := range ss {
		closure[s] = true
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range a.epsilon[s] {
			if !closure[t] {
				closure[t] = true
				stack = append(stack, t)
			}
		}
	}
	return closure
}

// Accepts reports whether the NFA accepts the given word of terminal
// symbols, used by the regex<->DFA equivalence tests (spec.md §8).
func (a *NFA) Accepts(word []Symbol) bool {
	cur := a.EpsilonClosure(a.StartStates())
	for _, sym := range word {
		next := make(map[State]bool)
		for s := range cur {
			for _, t := range a.Transitions(s, sym) {
				next[t] = true
			}
		}
		ss := make([]State, 0, len(next))
		for s := range next {
			ss = append(ss, s)
		}
		cur = a.EpsilonClosure(ss)
		if len(cur) == 0 {
			return false
		}
	}
	for s := range cur {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

// Copy returns a deep-enough copy (states/transitions are immutable State
// values, so only the containers need copying); used by `with` builders
// which must not mutate the receiver.
func (a *NFA) Copy() *NFA {
	b := New()
	for _, s := range a.states {
		b.AddState(s)
	}
	for s := range a.start {
		b.start[s] = true
	}
	for s := range a.final {
		b.final[s] = true
	}
	for from, m := range a.delta {
		nm := make(map[Symbol][]State, len(m))
		for sym, tos := range m {
			nm[sym] = append([]State{}, tos...)
		}
		b.delta[from] = nm
	}
	for from, tos := range a.epsilon {
		b.epsilon[from] = append([]State{}, tos...)
	}
	for sym := range a.alphabet {
		b.alphabet[sym] = struct{}{}
	}
	return b
}

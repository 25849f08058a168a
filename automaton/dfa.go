package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gql-lang/cfpq/internal/xlog"
)

// subsetState names a determinized state by the sorted, joined String()
// forms of the NFA states it subsumes -- any two equal subsets collapse
// to the same subsetState, which is exactly subset construction's
// dedup rule.
type subsetState string

func (subsetState) isState()        {}
func (s subsetState) String() string { return string(s) }

func makeSubsetState(states map[State]bool) subsetState {
	keys := make([]string, 0, len(states))
	for s := range states {
		keys = append(keys, s.String())
	}
	sort.Strings(keys)
	return subsetState(strings.Join(keys, ","))
}

// Determinize runs the classical subset construction, collapsing epsilon
// transitions, to produce a DFA language-equivalent to a.
func Determinize(a *NFA) *NFA {
	out := New()
	startSet := a.EpsilonClosure(a.StartStates())
	startKey := makeSubsetState(startSet)

	seen := map[subsetState]map[State]bool{startKey: startSet}
	queue := []subsetState{startKey}
	out.SetStart(startKey)
	if hasFinal(startSet, a) {
		out.SetFinal(startKey)
	}

	alphabet := a.Alphabet()
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		cur := seen[key]
		for _, sym := range alphabet {
			var moved []State
			for s := range cur {
				moved = append(moved, a.Transitions(s, sym)...)
			}
			if len(moved) == 0 {
				continue
			}
			next := a.EpsilonClosure(moved)
			nextKey := makeSubsetState(next)
			if _, ok := seen[nextKey]; !ok {
				seen[nextKey] = next
				queue = append(queue, nextKey)
				if hasFinal(next, a) {
					out.SetFinal(nextKey)
				}
			}
			out.AddTransition(key, sym, nextKey)
		}
	}
	xlog.T().Debugf("automaton: determinize produced %d states from %d", len(seen), len(a.States()))
	return out
}

func hasFinal(set map[State]bool, a *NFA) bool {
	for s := range set {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

// Minimize collapses a DFA to its minimal form via iterative partition
// refinement (Moore's algorithm): start with {final, non-final}, split
// blocks whenever two states in the same block transition to different
// blocks on some symbol, until the partition stabilizes. Correct for any
// deterministic, total-or-partial a; if a happens to be an NFA the result
// is only meaningful after Determinize. Minimize(Minimize(a)) is
// idempotent because the fixed-point partition, once reached, cannot be
// refined further.
func Minimize(a *NFA) *NFA {
	states := a.States()
	alphabet := a.Alphabet()

	blockOf := make(map[State]int)
	for _, s := range states {
		if a.IsFinal(s) {
			blockOf[s] = 1
		} else {
			blockOf[s] = 0
		}
	}
	numBlocks := 2

	for {
		sig := make(map[State]string, len(states))
		for _, s := range states {
			var b strings.Builder
			b.WriteString(strconv.Itoa(blockOf[s]))
			for _, sym := range alphabet {
				tos := a.Transitions(s, sym)
				if len(tos) == 0 {
					b.WriteString("|-")
					continue
				}
				b.WriteString("|")
				b.WriteString(strconv.Itoa(blockOf[tos[0]]))
			}
			sig[s] = b.String()
		}
		sigToBlock := make(map[string]int)
		newBlockOf := make(map[State]int, len(states))
		next := 0
		// deterministic assignment order
		ordered := append([]State{}, states...)
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })
		for _, s := range ordered {
			key := sig[s]
			id, ok := sigToBlock[key]
			if !ok {
				id = next
				sigToBlock[key] = id
				next++
			}
			newBlockOf[s] = id
		}
		if next == numBlocks {
			blockOf = newBlockOf
			break
		}
		blockOf = newBlockOf
		numBlocks = next
	}

	out := New()
	for _, s := range states {
		out.AddState(SimpleState(blockOf[s]))
	}
	for _, s := range states {
		b := blockOf[s]
		if a.IsStart(s) {
			out.SetStart(SimpleState(b))
		}
		if a.IsFinal(s) {
			out.SetFinal(SimpleState(b))
		}
	}
	seenTrans := make(map[string]bool)
	for _, s := range states {
		for _, sym := range alphabet {
			for _, to := range a.Transitions(s, sym) {
				key := strconv.Itoa(blockOf[s]) + "|" + sym.String() + "|" + strconv.Itoa(blockOf[to])
				if seenTrans[key] {
					continue
				}
				seenTrans[key] = true
				out.AddTransition(SimpleState(blockOf[s]), sym, SimpleState(blockOf[to]))
			}
		}
	}
	return out
}


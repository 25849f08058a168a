package automaton

import gql "github.com/gql-lang/cfpq"

// BFSReachable implements the multi-source constrained-reachability query
// described in spec.md §4.1 (regexp_reachability, merged-result mode):
// given a regex-DFA r and a graph-NFA g, returns the set of graph nodes
// reachable from any of the given start nodes along a word in L(r).
//
// The frontier is a set of (r-state, g-node) pairs, seeded from (r.start,
// start) for every r start state and every given start node, and advanced
// one graph-edge-label at a time by stepping both components together on
// matching labels (the block-diagonal product of spec.md §4.1, expressed
// directly over pair states rather than as an explicit matrix multiply,
// since only reachability -- not the transition table -- is needed here).
func BFSReachable(r *NFA, g *NFA, starts []gql.NodeID) map[gql.NodeID]bool {
	perStart := BFSReachablePerStart(r, g, starts)
	out := make(map[gql.NodeID]bool)
	for _, set := range perStart {
		for n := range set {
			out[n] = true
		}
	}
	return out
}

// BFSReachablePerStart is the per-start-node variant of BFSReachable.
func BFSReachablePerStart(r *NFA, g *NFA, starts []gql.NodeID) map[gql.NodeID]map[gql.NodeID]bool {
	result := make(map[gql.NodeID]map[gql.NodeID]bool)
	rStarts := r.EpsilonClosure(r.StartStates())

	for _, start := range starts {
		startState := NamedState(start)
		if _, ok := g.index[startState]; !ok {
			continue
		}
		type pair struct {
			r State
			g State
		}
		seen := make(map[pair]bool)
		var queue []pair
		for rs := range rStarts {
			gClosure := g.EpsilonClosure([]State{startState})
			for gs := range gClosure {
				p := pair{rs, gs}
				if !seen[p] {
					seen[p] = true
					queue = append(queue, p)
				}
			}
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, sym := range g.Alphabet() {
				rNexts := r.Transitions(cur.r, sym)
				if len(rNexts) == 0 {
					continue
				}
				gNexts := g.Transitions(cur.g, sym)
				if len(gNexts) == 0 {
					continue
				}
				for _, rn0 := range rNexts {
					rnClosure := r.EpsilonClosure([]State{rn0})
					for _, gn0 := range gNexts {
						gnClosure := g.EpsilonClosure([]State{gn0})
						for rn := range rnClosure {
							for gn := range gnClosure {
								p := pair{rn, gn}
								if !seen[p] {
									seen[p] = true
									queue = append(queue, p)
								}
							}
						}
					}
				}
			}
		}
		reached := make(map[gql.NodeID]bool)
		for p := range seen {
			if r.IsFinal(p.r) {
				if ns, ok := p.g.(NamedState); ok {
					reached[gql.NodeID(ns)] = true
				}
			}
		}
		result[start] = reached
	}
	return result
}

package grammar

import "github.com/gql-lang/cfpq/automaton"

// ToWCNF transforms g into a language-equivalent grammar in Weak Chomsky
// Normal Form (spec.md §4.3): unit productions eliminated, useless
// symbols removed, terminals occurring alongside other symbols factored
// into fresh single-terminal nonterminals, and bodies longer than two
// decomposed into right-linear chains of fresh nonterminals. Unlike
// classical CNF, ε may remain on any nonterminal's body and the start
// symbol may still appear on the right-hand side of a production.
func ToWCNF(g *CFG) *CFG {
	g = eliminateUnitProductions(g)
	g = removeUselessSymbols(g)
	g = factorTerminals(g)
	g = binarize(g)
	return g
}

// eliminateUnitProductions inlines every A -> B (B a lone nonterminal)
// production: for each B -> gamma, add A -> gamma, then drop unit
// productions. The unit closure is computed first so chains (A->B->C)
// are fully inlined.
func eliminateUnitProductions(g *CFG) *CFG {
	unitClosure := make(map[automaton.Nonterminal]map[automaton.Nonterminal]bool)
	nts := g.Nonterminals()
	nts = append(nts, g.Start)
	for _, n := range nts {
		unitClosure[n] = map[automaton.Nonterminal]bool{n: true}
	}
	changed := true
	for changed {
		changed = false
		for _, p := range g.Prods {
			if len(p.Body) != 1 {
				continue
			}
			nt, ok := p.Body[0].(automaton.Nonterminal)
			if !ok {
				continue
			}
			for target := range unitClosure[nt] {
				if !unitClosure[p.Head][target] {
					unitClosure[p.Head][target] = true
					changed = true
				}
			}
		}
	}

	out := New(g.Start)
	seen := make(map[string]bool)
	for head, reached := range unitClosure {
		for _, p := range g.Prods {
			if !reached[p.Head] {
				continue
			}
			if len(p.Body) == 1 {
				if _, ok := p.Body[0].(automaton.Nonterminal); ok {
					continue // still a unit production, skip
				}
			}
			key := prodKey(head, p.Body)
			if seen[key] {
				continue
			}
			seen[key] = true
			out.Prods = append(out.Prods, Production{Head: head, Body: p.Body})
		}
	}
	return out
}

func prodKey(head automaton.Nonterminal, body []automaton.Symbol) string {
	k := string(head) + "->"
	for _, s := range body {
		k += "|" + s.String()
	}
	return k
}

// removeUselessSymbols drops nonterminals that are non-generating (derive
// no terminal string) or unreachable from the start symbol.
func removeUselessSymbols(g *CFG) *CFG {
	generating := make(map[automaton.Nonterminal]bool)
	changed := true
	for changed {
		changed = false
		for _, p := range g.Prods {
			if generating[p.Head] {
				continue
			}
			ok := true
			for _, s := range p.Body {
				if nt, isNT := s.(automaton.Nonterminal); isNT && !generating[nt] {
					ok = false
					break
				}
			}
			if ok {
				generating[p.Head] = true
				changed = true
			}
		}
	}

	gen := New(g.Start)
	for _, p := range g.Prods {
		if !generating[p.Head] {
			continue
		}
		ok := true
		for _, s := range p.Body {
			if nt, isNT := s.(automaton.Nonterminal); isNT && !generating[nt] {
				ok = false
				break
			}
		}
		if ok {
			gen.Prods = append(gen.Prods, p)
		}
	}

	reachable := map[automaton.Nonterminal]bool{g.Start: true}
	changed = true
	for changed {
		changed = false
		for _, p := range gen.Prods {
			if !reachable[p.Head] {
				continue
			}
			for _, s := range p.Body {
				if nt, isNT := s.(automaton.Nonterminal); isNT && !reachable[nt] {
					reachable[nt] = true
					changed = true
				}
			}
		}
	}

	out := New(g.Start)
	for _, p := range gen.Prods {
		if reachable[p.Head] {
			out.Prods = append(out.Prods, p)
		}
	}
	return out
}

// factorTerminals replaces any terminal occurring in a body of length > 1
// with a fresh nonterminal N_a -> a, so that subsequent binarization only
// ever sees nonterminal symbols in positions other than a lone A->a body.
func factorTerminals(g *CFG) *CFG {
	used := make(map[automaton.Nonterminal]bool)
	for _, n := range g.Nonterminals() {
		used[n] = true
	}
	termNT := make(map[automaton.Terminal]automaton.Nonterminal)
	out := New(g.Start)
	counter := 0

	for _, p := range g.Prods {
		if len(p.Body) <= 1 {
			out.Prods = append(out.Prods, p)
			continue
		}
		newBody := make([]automaton.Symbol, len(p.Body))
		for i, s := range p.Body {
			if t, ok := s.(automaton.Terminal); ok {
				nt, ok := termNT[t]
				if !ok {
					nt = freshName("T_", used, &counter)
					termNT[t] = nt
					out.Prods = append(out.Prods, Production{Head: nt, Body: []automaton.Symbol{t}})
				}
				newBody[i] = nt
			} else {
				newBody[i] = s
			}
		}
		out.Prods = append(out.Prods, Production{Head: p.Head, Body: newBody})
	}
	return out
}

// binarize decomposes bodies longer than two nonterminals into a
// right-linear chain of fresh nonterminals: A -> X1 X2 X3 becomes
// A -> X1 B_1, B_1 -> X2 X3 (and so on for longer bodies).
func binarize(g *CFG) *CFG {
	used := make(map[automaton.Nonterminal]bool)
	for _, n := range g.Nonterminals() {
		used[n] = true
	}
	out := New(g.Start)
	counter := 0

	for _, p := range g.Prods {
		if len(p.Body) <= 2 {
			out.Prods = append(out.Prods, p)
			continue
		}
		head := p.Head
		body := p.Body
		for len(body) > 2 {
			next := freshName("B_", used, &counter)
			out.Prods = append(out.Prods, Production{Head: head, Body: []automaton.Symbol{body[0], next}})
			head = next
			body = body[1:]
		}
		out.Prods = append(out.Prods, Production{Head: head, Body: body})
	}
	return out
}

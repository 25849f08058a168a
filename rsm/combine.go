package rsm

import "github.com/gql-lang/cfpq/automaton"

// Rec builds the RSM value `rec N` evaluates to (spec.md §9: "model as an
// RSM value whose box is the single-transition FA (0) --Nonterminal(N)-->
// (1)"): a self-referential placeholder box that names N without yet
// defining it, left to be adjoined into a real grammar by `let`/algebra.
func Rec(name automaton.Nonterminal) *RSM {
	box := automaton.New()
	s0, s1 := automaton.SimpleState(0), automaton.SimpleState(1)
	box.SetStart(s0)
	box.SetFinal(s1)
	box.AddTransition(s0, name, s1)
	return &RSM{Start: name, Boxes: map[automaton.Nonterminal]*automaton.NFA{name: box}}
}

// FromFA wraps a plain FA as a trivial one-box RSM whose start box has no
// Nonterminal references of its own, used to lift the FA side of a `|`
// grammar-level union onto the same footing as an RSM operand.
func FromFA(name automaton.Nonterminal, fa *automaton.NFA) *RSM {
	return &RSM{Start: name, Boxes: map[automaton.Nonterminal]*automaton.NFA{name: fa}}
}

func renameBoxes(r *RSM, prefix string) (automaton.Nonterminal, map[automaton.Nonterminal]*automaton.NFA) {
	rename := make(map[automaton.Nonterminal]automaton.Nonterminal, len(r.Boxes))
	for name := range r.Boxes {
		rename[name] = automaton.Nonterminal(prefix + string(name))
	}
	boxes := make(map[automaton.Nonterminal]*automaton.NFA, len(r.Boxes))
	for name, box := range r.Boxes {
		boxes[rename[name]] = automaton.RenameNonterminals(box, rename)
	}
	return rename[r.Start], boxes
}

// Union realizes the CFL union closure at the grammar level: a fresh start
// symbol with a two-edge box choosing between a's (renamed) start and b's
// (renamed) start, spec.md §4.6's "RSM×FA and FA×RSM produce RSM" /
// "any combination of FA/RSM produces ... RSM" `|` rule. a and b are
// renamed under disjoint prefixes first so identically-named boxes from
// two independently built RSMs never collide.
func Union(a, b *RSM) *RSM {
	aStart, aBoxes := renameBoxes(a, "L$")
	bStart, bBoxes := renameBoxes(b, "R$")

	boxes := make(map[automaton.Nonterminal]*automaton.NFA, len(aBoxes)+len(bBoxes)+1)
	for k, v := range aBoxes {
		boxes[k] = v
	}
	for k, v := range bBoxes {
		boxes[k] = v
	}

	newStart := automaton.Nonterminal("_U")
	ubox := automaton.New()
	s0, s1 := automaton.SimpleState(0), automaton.SimpleState(1)
	ubox.SetStart(s0)
	ubox.SetFinal(s1)
	ubox.AddTransition(s0, aStart, s1)
	ubox.AddTransition(s0, bStart, s1)
	boxes[newStart] = ubox

	return &RSM{Start: newStart, Boxes: boxes}
}

// Intersect realizes RSM×FA / FA×RSM per spec.md §4.6: the result is a
// one-box RSM whose sole box is exactly the reachability FA produced by
// IntersectWithFA (spec.md §4.2) -- this reuses the one fixed-point
// implementation instead of duplicating it as a second per-box tensor
// construction (see DESIGN.md's Open Question decisions).
func Intersect(r *RSM, g *automaton.NFA) *RSM {
	box := IntersectWithFA(r, g)
	return &RSM{Start: r.Start, Boxes: map[automaton.Nonterminal]*automaton.NFA{r.Start: box}}
}

package rsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gql-lang/cfpq/automaton"
)

func singleton(s string) *automaton.NFA {
	a := automaton.New()
	s0, s1 := automaton.SimpleState(0), automaton.SimpleState(1)
	a.SetStart(s0)
	a.SetFinal(s1)
	a.AddTransition(s0, automaton.Terminal(s), s1)
	return a
}

func TestRecBuildsSelfReferentialPlaceholderBox(t *testing.T) {
	r := Rec(automaton.Nonterminal("S"))
	assert.Equal(t, automaton.Nonterminal("S"), r.Start)
	require.Contains(t, r.Boxes, automaton.Nonterminal("S"))
	box := r.Boxes["S"]
	triples := box.EdgeTriples()
	require.Len(t, triples, 1)
	assert.Equal(t, automaton.Nonterminal("S"), triples[0].Sym)
}

func TestFromFAWrapsAsOneBoxRSM(t *testing.T) {
	fa := singleton("a")
	r := FromFA("X", fa)
	assert.Equal(t, automaton.Nonterminal("X"), r.Start)
	assert.Same(t, fa, r.Boxes["X"])
}

func TestUnionDisjointsNamespacesAndAddsAlternationBox(t *testing.T) {
	a := New("S", singleton("a"))
	b := New("S", singleton("b")) // deliberately colliding box names

	u := Union(a, b)
	require.Len(t, u.Boxes, 3) // L$S, R$S, _U
	uBox := u.Boxes[u.Start]
	triples := uBox.EdgeTriples()
	require.Len(t, triples, 2)

	var targets []automaton.Nonterminal
	for _, tr := range triples {
		targets = append(targets, tr.Sym.(automaton.Nonterminal))
	}
	assert.Contains(t, targets, automaton.Nonterminal("L$S"))
	assert.Contains(t, targets, automaton.Nonterminal("R$S"))
}

func TestIntersectReusesFixedPointAsOneBoxRSM(t *testing.T) {
	c := New("S", singleton("a"))
	g := singleton("a")

	r := Intersect(c, g)
	assert.Equal(t, c.Start, r.Start)
	require.Contains(t, r.Boxes, c.Start)
	assert.True(t, len(r.Boxes[c.Start].StartStates()) > 0)
}

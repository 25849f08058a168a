package automaton

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sym(s string) Symbol { return Terminal(s) }

func TestRegexToDFAAcceptsSampledStrings(t *testing.T) {
	dfa, err := RegexToDFA("a b | a c")
	require.NoError(t, err)
	require.True(t, dfa.Accepts([]Symbol{sym("a"), sym("b")}))
	require.True(t, dfa.Accepts([]Symbol{sym("a"), sym("c")}))
	require.False(t, dfa.Accepts([]Symbol{sym("a"), sym("d")}))
	require.False(t, dfa.Accepts([]Symbol{sym("a")}))
}

func TestRegexStarAcceptsEpsilonAndRepetition(t *testing.T) {
	dfa, err := RegexToDFA("a*")
	require.NoError(t, err)
	require.True(t, dfa.Accepts(nil))
	require.True(t, dfa.Accepts([]Symbol{sym("a")}))
	require.True(t, dfa.Accepts([]Symbol{sym("a"), sym("a"), sym("a")}))
	require.False(t, dfa.Accepts([]Symbol{sym("b")}))
}

func TestUnionIdentity(t *testing.T) {
	a := CompileRegex(reLit("a"))
	b := CompileRegex(reLit("b"))
	u := Union(a, b)
	require.True(t, u.Accepts([]Symbol{sym("a")}))
	require.True(t, u.Accepts([]Symbol{sym("b")}))
	require.False(t, u.Accepts([]Symbol{sym("c")}))
}

func TestConcatIdentity(t *testing.T) {
	a := CompileRegex(reLit("a"))
	b := CompileRegex(reLit("b"))
	c := Concat(a, b)
	require.True(t, c.Accepts([]Symbol{sym("a"), sym("b")}))
	require.False(t, c.Accepts([]Symbol{sym("a")}))
	require.False(t, c.Accepts([]Symbol{sym("b")}))
}

func TestIntersectEmptyYieldsEmpty(t *testing.T) {
	a := CompileRegex(reLit("a"))
	empty := New() // no start/final states: language is empty
	got := Intersect(a, empty)
	require.False(t, got.Accepts([]Symbol{sym("a")}))
	require.Empty(t, got.StartStates())
}

func TestIntersectSelfIsLanguageEquivalent(t *testing.T) {
	re, err := ParseRegex("a b*")
	require.NoError(t, err)
	a := CompileRegex(re)
	got := Intersect(a, a)
	for _, word := range [][]Symbol{
		{sym("a")},
		{sym("a"), sym("b")},
		{sym("a"), sym("b"), sym("b")},
	} {
		require.Equal(t, a.Accepts(word), got.Accepts(word))
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	dfa, err := RegexToDFA("(a b) | (a c)")
	require.NoError(t, err)
	once := Minimize(dfa)
	twice := Minimize(once)
	require.Equal(t, len(once.States()), len(twice.States()))
}

func TestTransitiveClosureFixedPoint(t *testing.T) {
	m := NewBoolMatrix(4)
	m.Set(0, 1)
	m.Set(1, 2)
	m.Set(2, 3)
	tc := TransitiveClosure(m)
	sq := Mul(tc, tc)
	merged := tc.Clone()
	merged.Or(sq)
	require.Equal(t, tc.Nnz(), merged.Nnz())
}

func TestStructuralHashStableAcrossEquivalentBuilds(t *testing.T) {
	a, err := RegexToDFA("a b")
	require.NoError(t, err)
	re2, err := ParseRegex("a b")
	require.NoError(t, err)
	b := Determinize(CompileRegex(re2))
	ha, err := StructuralHash(a)
	require.NoError(t, err)
	hb, err := StructuralHash(b)
	require.NoError(t, err)
	require.Equal(t, ha, hb)
}

package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenameNonterminalsRewritesOnlyNonterminalSymbols(t *testing.T) {
	a := New()
	s0, s1 := SimpleState(0), SimpleState(1)
	a.SetStart(s0)
	a.SetFinal(s1)
	a.AddTransition(s0, Terminal("x"), s1)
	a.AddTransition(s0, Nonterminal("S"), s1)

	renamed := RenameNonterminals(a, map[Nonterminal]Nonterminal{"S": "L$S"})

	var sawTerminal, sawRenamed bool
	for _, tr := range renamed.EdgeTriples() {
		switch sym := tr.Sym.(type) {
		case Terminal:
			assert.Equal(t, Terminal("x"), sym)
			sawTerminal = true
		case Nonterminal:
			assert.Equal(t, Nonterminal("L$S"), sym)
			sawRenamed = true
		}
	}
	assert.True(t, sawTerminal)
	assert.True(t, sawRenamed)
}

func TestRenameNonterminalsLeavesUnmappedNamesAlone(t *testing.T) {
	a := New()
	s0, s1 := SimpleState(0), SimpleState(1)
	a.SetStart(s0)
	a.SetFinal(s1)
	a.AddTransition(s0, Nonterminal("Untouched"), s1)

	renamed := RenameNonterminals(a, map[Nonterminal]Nonterminal{"Other": "X"})

	triples := renamed.EdgeTriples()
	assert.Len(t, triples, 1)
	assert.Equal(t, Nonterminal("Untouched"), triples[0].Sym)
}

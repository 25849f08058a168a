package cfpq

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/grammar"
	"github.com/gql-lang/cfpq/graph"
)

// buildTwoCycles mirrors spec.md §8 Scenario 3's build_two_cycles(n, m,
// labels): a cycle of n+1 edges labeled labels[0] through nodes 0..n,
// closed back to 0, sharing node n with a second cycle of m+1 edges
// labeled labels[1] through nodes n+1..n+m and back to n.
func buildTwoCycles(n, m int, labels [2]gql.Label) *graph.Graph {
	g := graph.New()
	node := func(i int) gql.NodeID { return gql.NodeID(nodeName(i)) }
	for i := 0; i < n; i++ {
		g.AddEdge(node(i), labels[0], node(i+1))
	}
	g.AddEdge(node(n), labels[0], node(0))

	base := n + 1
	prev := node(n)
	for i := 0; i < m; i++ {
		cur := node(base + i)
		g.AddEdge(prev, labels[1], cur)
		prev = cur
	}
	g.AddEdge(prev, labels[1], node(n))
	return g
}

func nodeName(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return "0"
	}
	s := ""
	for i > 0 {
		s = string(digits[i%10]) + s
		i /= 10
	}
	return s
}

// dyckGrammar builds S -> a S b | epsilon, the classical two-cycles query
// of spec.md §8.
func dyckGrammar() *grammar.CFG {
	c := grammar.New("S")
	c.AddProduction("S", automaton.Terminal("a"), automaton.Nonterminal("S"), automaton.Terminal("b"))
	c.AddProduction("S")
	return c
}

func sortTriples(ts []Triple) []Triple {
	out := append([]Triple{}, ts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].Nt != out[j].Nt {
			return out[i].Nt < out[j].Nt
		}
		return out[i].To < out[j].To
	})
	return out
}

func TestHellingsAndMatrixAgreeOnTwoCycles(t *testing.T) {
	g := buildTwoCycles(1, 2, [2]gql.Label{"a", "b"})
	c := dyckGrammar()

	h := sortTriples(Hellings(g, c))
	m := sortTriples(Matrix(g, c))

	require.Equal(t, len(h), len(m))
	assert.Equal(t, h, m)

	// every node reaches itself via the epsilon branch of S
	for _, n := range g.Nodes() {
		found := false
		for _, tr := range h {
			if tr.Nt == "S" && tr.From == n && tr.To == n {
				found = true
			}
		}
		assert.True(t, found, "expected S-self-loop triple for node %s", n)
	}
}

func TestQueryFiltersByStartFinalAndNonterminal(t *testing.T) {
	g := buildTwoCycles(1, 2, [2]gql.Label{"a", "b"})
	c := dyckGrammar()

	all := Query(g, c, Options{})
	require.NotEmpty(t, all)

	restricted := Query(g, c, Options{
		StartNodes:  []gql.NodeID{"0"},
		Nonterminal: "S",
	})
	for _, tr := range restricted {
		assert.Equal(t, gql.NodeID("0"), tr.From)
		assert.Equal(t, automaton.Nonterminal("S"), tr.Nt)
	}

	unknown := Query(g, c, Options{Nonterminal: "Z"})
	assert.Empty(t, unknown)
}

func TestReachableExistential(t *testing.T) {
	g := buildTwoCycles(1, 2, [2]gql.Label{"a", "b"})
	c := dyckGrammar()

	assert.True(t, Reachable(g, c, "S", []gql.NodeID{"0"}, []gql.NodeID{"0"}))
	assert.False(t, Reachable(g, c, "Z", []gql.NodeID{"0"}, []gql.NodeID{"0"}))
}

func TestHellingsOnGenerationsSameAsScenario(t *testing.T) {
	ds, ok := graph.Dataset("generations")
	require.True(t, ok)

	c := grammar.New("sameAs")
	c.AddProduction("sameAs", automaton.Terminal("sameAs"))
	c.AddProduction("sameAs", automaton.Terminal("sameAs"), automaton.Nonterminal("sameAs"))
	c.AddProduction("sameAs")

	triples := Query(ds, c, Options{
		StartNodes:  []gql.NodeID{"57"},
		FinalNodes:  []gql.NodeID{"57"},
		Nonterminal: "sameAs",
	})
	require.Len(t, triples, 1)
	assert.Equal(t, gql.NodeID("57"), triples[0].From)
	assert.Equal(t, gql.NodeID("57"), triples[0].To)
}

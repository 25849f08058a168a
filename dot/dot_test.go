package dot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/graph"
	"github.com/gql-lang/cfpq/rsm"
)

func TestWriteGraphIncludesNodesAndLabeledEdges(t *testing.T) {
	g := graph.New()
	g.AddEdge(gql.NodeID("1"), gql.Label("a"), gql.NodeID("2"))

	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, "g", g))
	out := buf.String()

	assert.Contains(t, out, `"1"`)
	assert.Contains(t, out, `"2"`)
	assert.Contains(t, out, `label="a"`)
}

func TestWriteNFAIncludesNodesAndLabeledEdges(t *testing.T) {
	a := automaton.New()
	s0, s1 := automaton.SimpleState(0), automaton.SimpleState(1)
	a.SetStart(s0)
	a.SetFinal(s1)
	a.AddTransition(s0, automaton.Terminal("x"), s1)

	var buf bytes.Buffer
	require.NoError(t, WriteNFA(&buf, "g", a))
	out := buf.String()

	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, `"q0"`)
	assert.Contains(t, out, `"q1"`)
	assert.Contains(t, out, `label="x"`)
	assert.Contains(t, out, "doublecircle")
}

func TestWriteRSMGroupsEachBoxAsItsOwnCluster(t *testing.T) {
	box := automaton.New()
	s0, s1 := automaton.SimpleState(0), automaton.SimpleState(1)
	box.SetStart(s0)
	box.SetFinal(s1)
	box.AddTransition(s0, automaton.Terminal("a"), s1)
	r := rsm.New("S", box)

	var buf bytes.Buffer
	require.NoError(t, WriteRSM(&buf, "r", r))
	out := buf.String()

	assert.Contains(t, out, "cluster_0")
	assert.Contains(t, out, `label="S"`)
	assert.Contains(t, out, `label="a"`)
}

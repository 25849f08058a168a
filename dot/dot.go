// Package dot renders FAs and RSMs as Graphviz DOT source (spec.md §6):
// nodes printed as their identifier, edges printed with a `label=<label>`
// attribute. Key ordering across a run is unspecified by spec.md, so this
// package sorts by string form purely for reproducible test diffs, not
// because any ordering is semantically required.
package dot

import (
	"fmt"
	"io"
	"sort"

	gql "github.com/gql-lang/cfpq"
	"github.com/gql-lang/cfpq/automaton"
	"github.com/gql-lang/cfpq/graph"
	"github.com/gql-lang/cfpq/rsm"
)

// WriteGraph renders a loaded/built graph as a plain `digraph`, nodes
// printed as their identifier, edges printed with a `label=<label>`
// attribute (spec.md §6).
func WriteGraph(w io.Writer, name string, g *graph.Graph) error {
	bw := &errWriter{w: w}
	bw.Printf("digraph %s {\n", quote(name))

	nodes := append([]gql.NodeID(nil), g.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	for _, n := range nodes {
		bw.Printf("\t%s;\n", quote(string(n)))
	}

	edges := append([]graph.Edge(nil), g.Edges()...)
	sort.Slice(edges, func(i, j int) bool {
		return string(edges[i].From)+"\x00"+string(edges[i].Label)+"\x00"+string(edges[i].To) <
			string(edges[j].From)+"\x00"+string(edges[j].Label)+"\x00"+string(edges[j].To)
	})
	for _, e := range edges {
		bw.Printf("\t%s -> %s [label=%s];\n", quote(string(e.From)), quote(string(e.To)), quote(string(e.Label)))
	}

	bw.Printf("}\n")
	return bw.err
}

// WriteNFA renders a as a `digraph` in Graphviz's conventional FA style:
// each start state gets an incoming arrow from a point-shaped node, and
// final states are drawn with shape=doublecircle.
func WriteNFA(w io.Writer, name string, a *automaton.NFA) error {
	bw := &errWriter{w: w}
	bw.Printf("digraph %s {\n", quote(name))
	bw.Printf("\trankdir=LR;\n")

	states := append([]automaton.State(nil), a.States()...)
	sort.Slice(states, func(i, j int) bool { return states[i].String() < states[j].String() })
	for _, s := range states {
		shape := "circle"
		if a.IsFinal(s) {
			shape = "doublecircle"
		}
		bw.Printf("\t%s [shape=%s];\n", quote(s.String()), shape)
		if a.IsStart(s) {
			entry := "__start_" + s.String()
			bw.Printf("\t%s [shape=point];\n", quote(entry))
			bw.Printf("\t%s -> %s;\n", quote(entry), quote(s.String()))
		}
	}

	triples := a.EdgeTriples()
	sort.Slice(triples, func(i, j int) bool { return edgeKey(triples[i]) < edgeKey(triples[j]) })
	for _, tr := range triples {
		bw.Printf("\t%s -> %s [label=%s];\n", quote(tr.From.String()), quote(tr.To.String()), quote(tr.Sym.String()))
	}
	for _, pair := range sortedEpsilon(a.EpsilonEdges()) {
		bw.Printf("\t%s -> %s [label=%s];\n", quote(pair[0].String()), quote(pair[1].String()), quote("ε"))
	}

	bw.Printf("}\n")
	return bw.err
}

// WriteRSM renders every box of r as its own labeled subgraph cluster, so
// cross-box nonterminal edges stay visible as ordinary labeled edges
// between the two boxes' node sets.
func WriteRSM(w io.Writer, name string, r *rsm.RSM) error {
	bw := &errWriter{w: w}
	bw.Printf("digraph %s {\n", quote(name))
	bw.Printf("\trankdir=LR;\n")

	names := make([]string, 0, len(r.Boxes))
	for nt := range r.Boxes {
		names = append(names, string(nt))
	}
	sort.Strings(names)

	for i, nt := range names {
		box := r.Boxes[automaton.Nonterminal(nt)]
		bw.Printf("\tsubgraph cluster_%d {\n", i)
		bw.Printf("\t\tlabel=%s;\n", quote(nt))
		states := append([]automaton.State(nil), box.States()...)
		sort.Slice(states, func(i, j int) bool { return states[i].String() < states[j].String() })
		for _, s := range states {
			shape := "circle"
			if box.IsFinal(s) {
				shape = "doublecircle"
			}
			bw.Printf("\t\t%s [shape=%s];\n", quote(nt+"_"+s.String()), shape)
		}
		triples := box.EdgeTriples()
		sort.Slice(triples, func(i, j int) bool { return edgeKey(triples[i]) < edgeKey(triples[j]) })
		for _, tr := range triples {
			bw.Printf("\t\t%s -> %s [label=%s];\n", quote(nt+"_"+tr.From.String()), quote(nt+"_"+tr.To.String()), quote(tr.Sym.String()))
		}
		bw.Printf("\t}\n")
	}

	bw.Printf("}\n")
	return bw.err
}

func sortedEpsilon(pairs [][2]automaton.State) [][2]automaton.State {
	out := append([][2]automaton.State(nil), pairs...)
	sort.Slice(out, func(i, j int) bool {
		return out[i][0].String()+"\x00"+out[i][1].String() < out[j][0].String()+"\x00"+out[j][1].String()
	})
	return out
}

func edgeKey(tr automaton.Transition) string {
	return tr.From.String() + "\x00" + tr.Sym.String() + "\x00" + tr.To.String()
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// errWriter lets every Printf call ignore its individual error, keeping
// the first one for the caller, the same "accumulate, check once" idiom
// bufio.Writer callers use.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
